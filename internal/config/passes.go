package config

// Passes toggles the optional transformations of the optimization
// pipeline.
type Passes struct {
	LoopUnrolling     bool
	LoopVectorization bool
	SLPVectorization  bool
	LoopInterleaving  bool
	CallGraphProfile  bool
	MergeFunctions    bool
	DebugLogging      bool
	VerifyEach        bool
}

func DefaultPasses(bt BuildType) Passes {
	if bt == RELEASE {
		return Passes{
			LoopUnrolling:     true,
			LoopVectorization: true,
			SLPVectorization:  true,
			LoopInterleaving:  true,
			CallGraphProfile:  true,
			MergeFunctions:    true,
		}
	}
	return Passes{
		VerifyEach:   true,
		DebugLogging: DEV,
	}
}
