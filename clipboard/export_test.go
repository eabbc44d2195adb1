package clipboard

// SetEnv replaces the environment lookup used to detect tmux and screen.
func (o *OSC52) SetEnv(env func(string) string) {
	o.env = env
}
