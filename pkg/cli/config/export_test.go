package config

// SetPath sets the override file path for testing
func (c *Classifier) SetPath(path string) {
	c.path = path
}
