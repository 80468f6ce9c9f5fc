package preset

// Builtin returns the medium-model presets: V1 is the baseline, V2 shortens
// chunks and V3 disables VAD filtering.
func Builtin() *Catalog {
	c, err := NewCatalog(map[string]ModelPresets{
		DefaultModel: {
			Current: 1,
			Presets: []Preset{
				{
					Version:                 1,
					Description:             "standard",
					BeamSize:                5,
					ChunkLength:             30,
					VADFilter:               true,
					ConditionOnPreviousText: true,
					Temperature:             0.0,
				},
				{
					Version:                 2,
					Description:             "short chunks",
					BeamSize:                5,
					ChunkLength:             15,
					VADFilter:               true,
					ConditionOnPreviousText: true,
					Temperature:             0.0,
				},
				{
					Version:                 3,
					Description:             "VAD disabled",
					BeamSize:                5,
					ChunkLength:             30,
					VADFilter:               false,
					ConditionOnPreviousText: true,
					Temperature:             0.0,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}

	return c
}
