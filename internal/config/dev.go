package config

// DEV is set for development builds of the CLI, through
// -ldflags "-X main.DevMode=1".
var DEV bool

func SetDevMode(dev bool) {
	DEV = dev
}
