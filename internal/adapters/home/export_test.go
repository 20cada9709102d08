package home

// NewWith creates a Locator with stubbed lookups.
func NewWith(getenv func(string) string, userHomeDir, userConfigDir func() (string, error)) *Locator {
	return &Locator{getenv: getenv, userHomeDir: userHomeDir, userConfigDir: userConfigDir}
}
