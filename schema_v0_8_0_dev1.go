package sfftkrw

func init() {
	registerSchema(&Schema{
		Version: Version080dev1,
		Features: Features{
			SoftwareList:  true,
			EncodedMeshes: true,
		},
		root: "segmentation",
		names: map[string]string{
			"transforms": "transform_list",
			"segments":   "segment_list",
			"lattices":   "lattice_list",
		},
		items: map[string]string{
			"ExternalReferenceList":       "ref",
			"GlobalExternalReferenceList": "ref",
			"SoftwareList":                "software",
			"TransformList":               "transformation_matrix",
			"SegmentList":                 "segment",
			"LatticeList":                 "lattice",
			"MeshList":                    "mesh",
		},
		xmlAttrs: map[string]bool{
			"id":                       true,
			"Segment.parent_id":        true,
			"VolumeStructure.cols":     true,
			"VolumeStructure.rows":     true,
			"VolumeStructure.sections": true,
			"VolumeIndex.cols":         true,
			"VolumeIndex.rows":         true,
			"VolumeIndex.sections":     true,
		},
		unsupported: map[string]bool{
			"Segmentation.software":                true,
			"Segment.complexes_and_macromolecules": true,
			"Mesh.vertex_list":                     true,
			"Mesh.polygon_list":                    true,
		},
		descriptors: map[PrimaryDescriptor]string{
			DescriptorThreeDVolume:       "three_d_volume",
			DescriptorMeshList:           "mesh_list",
			DescriptorShapePrimitiveList: "shape_primitive_list",
		},
		released: 2,
	})
}
