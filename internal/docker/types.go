package docker

// Container represents a Docker container with relevant metadata
type Container struct {
	ID     string
	Name   string
	State  string // running, exited, etc.
	Status string // human readable, e.g. "Up 2 hours"
	Image  string
	Labels map[string]string
}

// FilterOptions contains options for filtering containers
type FilterOptions struct {
	NamePattern string // Regex pattern for container names
	IncludeAll  bool   // Include stopped containers
}

// IsRunning reports whether the container is currently running.
func (c Container) IsRunning() bool {
	return c.State == "running"
}
