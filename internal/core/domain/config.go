package domain

// ConfigFileName is the name of the bundle declaration file.
const ConfigFileName = "squeeze.yaml"
