package components

// Pump gates the Tank2 outflow and carries the heat that ends up in the
// downstream tanks.
type Pump struct {
	Running     bool    `inspect:"bool"`
	Temperature float64 `inspect:"label,fmt:%.2f C"`
}

// Toggle flips the running state and returns the new value.
func (p *Pump) Toggle() bool {
	p.Running = !p.Running
	return p.Running
}
