package sfftkrw

func init() {
	registerSchema(&Schema{
		Version: Version070dev0,
		Features: Features{
			SingleSoftware: true,
			ExplicitMeshes: true,
			Complexes:      true,
		},
		root: "segmentation",
		names: map[string]string{
			"parent_id":                    "parentID",
			"lattice_id":                   "latticeId",
			"transform_id":                 "transformId",
			"number_of_instances":          "numberOfInstances",
			"external_references":          "externalReferences",
			"biological_annotation":        "biologicalAnnotation",
			"complexes_and_macromolecules": "complexesAndMacromolecules",
			"mesh_list":                    "meshList",
			"three_d_volume":               "threeDVolume",
			"shape_primitive_list":         "shapePrimitiveList",
			"bottom_radius":                "bottomRadius",
			"processing_details":           "processingDetails",
			"primary_descriptor":           "primaryDescriptor",
			"transforms":                   "transformList",
			"bounding_box":                 "boundingBox",
			"global_external_references":   "globalExternalReferences",
			"segments":                     "segmentList",
			"lattices":                     "latticeList",
			"vertex_list":                  "vertexList",
			"polygon_list":                 "polygonList",

			"ExternalReference.resource":                "type",
			"ExternalReference.url":                     "otherType",
			"ExternalReference.accession":               "value",
			"Vertex.id":                                 "vID",
			"Polygon.id":                                "PID",
			"Polygon.vertices":                          "v",
			"ComplexesAndMacromolecules.complexes":      "complex",
			"ComplexesAndMacromolecules.macromolecules": "macromolecule",
		},
		items: map[string]string{
			"ExternalReferenceList":       "ref",
			"GlobalExternalReferenceList": "ref",
			"TransformList":               "transformationMatrix",
			"SegmentList":                 "segment",
			"LatticeList":                 "lattice",
			"MeshList":                    "mesh",
			"VertexList":                  "v",
			"PolygonList":                 "P",
		},
		xmlAttrs: map[string]bool{
			"id":                       true,
			"Vertex.id":                true,
			"Polygon.id":               true,
			"Segment.parent_id":        true,
			"VolumeStructure.cols":     true,
			"VolumeStructure.rows":     true,
			"VolumeStructure.sections": true,
			"VolumeIndex.cols":         true,
			"VolumeIndex.rows":         true,
			"VolumeIndex.sections":     true,
		},
		unsupported: map[string]bool{
			"Segmentation.software_list": true,
			"Software.id":                true,
			"Mesh.vertices":              true,
			"Mesh.normals":               true,
			"Mesh.triangles":             true,
		},
		descriptors: map[PrimaryDescriptor]string{
			DescriptorThreeDVolume:       "threeDVolume",
			DescriptorMeshList:           "meshList",
			DescriptorShapePrimitiveList: "shapePrimitiveList",
		},
		released: 1,
	})
}
