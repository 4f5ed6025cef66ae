package exec

import "maps"

// config separates global settings, fixed at creation, from local settings
// that apply to a single run and override the globals.
type config struct {
	globalEnv           map[string]string
	globalDir           string
	globalInheritEnv    bool
	globalDisableColors bool
	globalPassthrough   bool

	localEnv           map[string]string
	localDir           string
	localInheritEnv    *bool
	localDisableColors *bool
	localPassthrough   *bool
}

func newConfig() *config {
	return &config{
		globalEnv: make(map[string]string),
		localEnv:  make(map[string]string),
	}
}

func (c *config) clone() *config {
	return &config{
		globalEnv:           maps.Clone(c.globalEnv),
		globalDir:           c.globalDir,
		globalInheritEnv:    c.globalInheritEnv,
		globalDisableColors: c.globalDisableColors,
		globalPassthrough:   c.globalPassthrough,
		localEnv:            maps.Clone(c.localEnv),
		localDir:            c.localDir,
		localInheritEnv:     cloneBool(c.localInheritEnv),
		localDisableColors:  cloneBool(c.localDisableColors),
		localPassthrough:    cloneBool(c.localPassthrough),
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	val := *b
	return &val
}

// effectiveEnv merges global and local variables, local winning.
func (c *config) effectiveEnv() map[string]string {
	env := make(map[string]string, len(c.globalEnv)+len(c.localEnv))
	maps.Copy(env, c.globalEnv)
	maps.Copy(env, c.localEnv)

	if c.effectiveDisableColors() {
		env["NO_COLOR"] = "1"
		env["TERM"] = "dumb"
		env["CLICOLOR"] = "0"
		env["CLICOLOR_FORCE"] = "0"
		env["FORCE_COLOR"] = "0"
	}

	return env
}

func (c *config) effectiveDir() string {
	if c.localDir != "" {
		return c.localDir
	}
	return c.globalDir
}

func (c *config) effectiveInheritEnv() bool {
	if c.localInheritEnv != nil {
		return *c.localInheritEnv
	}
	return c.globalInheritEnv
}

func (c *config) effectiveDisableColors() bool {
	if c.localDisableColors != nil {
		return *c.localDisableColors
	}
	return c.globalDisableColors
}

func (c *config) effectivePassthrough() bool {
	if c.localPassthrough != nil {
		return *c.localPassthrough
	}
	return c.globalPassthrough
}

// resetLocal clears local settings so they do not leak into the next run.
func (c *config) resetLocal() {
	c.localEnv = make(map[string]string)
	c.localDir = ""
	c.localInheritEnv = nil
	c.localDisableColors = nil
	c.localPassthrough = nil
}
