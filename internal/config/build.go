package config

import "fmt"

type BuildType int

const (
	RELEASE BuildType = iota
	DEBUG
)

func (bt BuildType) String() string {
	switch bt {
	case RELEASE:
		return "release"
	case DEBUG:
		return "debug"
	}
	return "unknown"
}

// Pipeline names the optimization pipeline run over JIT-compiled modules.
func (bt BuildType) Pipeline() string {
	if bt == RELEASE {
		return "default<O2>"
	}
	return "default<O0>"
}

func ParseBuildType(name string) (BuildType, error) {
	switch name {
	case "release", "-release":
		return RELEASE, nil
	case "debug", "-debug", "":
		return DEBUG, nil
	}
	return DEBUG, fmt.Errorf("unknown build type %q, expected release or debug", name)
}
