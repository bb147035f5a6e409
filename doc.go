// Package sfftkrw reads and writes EMDB-SFF segmentations.
//
// A Segmentation is one in-memory document model with three interchangeable
// encodings:
//
//   - XML (.sff, .xml)
//   - HFF, a hierarchical group/dataset store shaped like HDF5 (.hff, .h5, .hdf5)
//   - JSON (.json)
//
// and two schema versions, 0.8.0.dev1 (the default) and 0.7.0.dev0. The
// version recorded in a document selects the wire dialect on read; the
// version of a Segmentation selects it on write.
//
// Design policy:
//   - Entities are plain structs with Opt fields; absence is distinct from
//     the zero value.
//   - Each entity type declares a field table. Validation and all three
//     encoders walk those tables, so an encoding never diverges from the
//     model.
//   - Ids are allocated per entity kind by a Builder and are never reused.
//   - Validation precedes every write; an invalid document produces no file.
//
// Typical usage:
//
//	b := sfftkrw.MustBuilder("")
//	seg := b.NewSegmentation("cells", sfftkrw.DescriptorThreeDVolume)
//	...
//	err := sfftkrw.Export("cells.hff", seg, nil)
//
//	back, err := sfftkrw.ReadFile("cells.hff")
package sfftkrw
