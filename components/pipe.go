package components

import "errors"

// ErrShortPath is returned when a pipe polyline has fewer than two points.
var ErrShortPath = errors.New("pipe path needs at least two points")

// PipeID identifies one of the six rendered pipe segments.
type PipeID int

const (
	PipeTank1ToTank2 PipeID = iota
	PipeTank2ToPump
	PipePumpOutlet
	PipeSplit
	PipeBranchToTank4
	PipeBranchToTank3
	NumPipes
)

var pipeNames = [NumPipes]string{
	"tank1-tank2",
	"tank2-pump",
	"pump-outlet",
	"split",
	"branch-tank4",
	"branch-tank3",
}

// String returns a short name for the segment.
func (id PipeID) String() string {
	if id < 0 || id >= NumPipes {
		return "pipe?"
	}
	return pipeNames[id]
}

// Point is a 2D position in scene coordinates.
type Point struct {
	X, Y float32
}

// Pipe is one polyline segment of the network.
// The path is fixed at construction; Flowing is recomputed every tick.
type Pipe struct {
	ID      PipeID `inspect:"label"`
	Flowing bool   `inspect:"bool"`

	path []Point
}

// NewPipe builds a pipe segment from at least two points.
func NewPipe(id PipeID, points ...Point) (Pipe, error) {
	if len(points) < 2 {
		return Pipe{}, ErrShortPath
	}
	path := make([]Point, len(points))
	copy(path, points)
	return Pipe{ID: id, path: path}, nil
}

// Path returns a copy of the segment polyline.
func (p *Pipe) Path() []Point {
	out := make([]Point, len(p.path))
	copy(out, p.path)
	return out
}

// Len returns the number of points in the polyline.
func (p *Pipe) Len() int {
	return len(p.path)
}
