package version

var Version = "0.3.1"
