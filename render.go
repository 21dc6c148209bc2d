package nebula

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandDot      CommandType = iota // filled circle at (X, Y) with Radius
	CommandRect                        // filled rect at (X, Y) sized (X2, Y2)
	CommandLine                        // segment (X, Y)-(X2, Y2) of Width
	CommandPolygon                     // filled convex polygon over Points
	CommandPolyline                    // open stroke through Points of Width
	CommandRing                        // circle outline at (X, Y) with Radius and Width
)

// String returns a short name for the command type.
func (t CommandType) String() string {
	switch t {
	case CommandDot:
		return "dot"
	case CommandRect:
		return "rect"
	case CommandLine:
		return "line"
	case CommandPolygon:
		return "polygon"
	case CommandPolyline:
		return "polyline"
	case CommandRing:
		return "ring"
	default:
		return "unknown"
	}
}

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

func toColor32(c Color) color32 {
	return color32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// RenderCommand is a single draw instruction emitted by a layer. Backends
// submit commands in emission order, which is also the painter's order.
type RenderCommand struct {
	Type   CommandType
	X, Y   float32
	X2, Y2 float32
	Radius float32
	Width  float32
	Color  color32

	// Points is a view into the owning buffer's vertex arena. Valid until
	// the buffer is reset.
	Points []Vec2
}

// Alpha returns the command's opacity.
func (c *RenderCommand) Alpha() float64 {
	return float64(c.Color.A)
}

// CommandBuffer collects one layer's commands for a frame. Buffers are
// reused across frames; Reset keeps capacity.
type CommandBuffer struct {
	commands []RenderCommand
	points   []Vec2
	// Dirty is set whenever the buffer changes and cleared by the backend
	// after submission. A paused layer keeps its last frame on screen.
	Dirty bool
}

const defaultCommandCap = 1024

// NewCommandBuffer creates an empty buffer with preallocated capacity.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{commands: make([]RenderCommand, 0, defaultCommandCap)}
}

// Reset empties the buffer for a new frame.
func (b *CommandBuffer) Reset() {
	b.commands = b.commands[:0]
	b.points = b.points[:0]
	b.Dirty = true
}

// Commands returns the commands in emission order. The slice MUST NOT be mutated.
func (b *CommandBuffer) Commands() []RenderCommand {
	return b.commands
}

// Len returns the number of commands.
func (b *CommandBuffer) Len() int {
	return len(b.commands)
}

// Count returns the number of commands of the given type.
func (b *CommandBuffer) Count(t CommandType) int {
	n := 0
	for i := range b.commands {
		if b.commands[i].Type == t {
			n++
		}
	}
	return n
}

// Dot emits a filled circle.
func (b *CommandBuffer) Dot(x, y, r float64, c Color) {
	b.commands = append(b.commands, RenderCommand{
		Type: CommandDot, X: float32(x), Y: float32(y), Radius: float32(r), Color: toColor32(c),
	})
}

// Rect emits a filled axis-aligned rectangle.
func (b *CommandBuffer) Rect(x, y, w, h float64, c Color) {
	b.commands = append(b.commands, RenderCommand{
		Type: CommandRect, X: float32(x), Y: float32(y), X2: float32(w), Y2: float32(h), Color: toColor32(c),
	})
}

// Line emits a stroked segment.
func (b *CommandBuffer) Line(x1, y1, x2, y2, width float64, c Color) {
	b.commands = append(b.commands, RenderCommand{
		Type: CommandLine, X: float32(x1), Y: float32(y1), X2: float32(x2), Y2: float32(y2),
		Width: float32(width), Color: toColor32(c),
	})
}

// Ring emits a stroked circle.
func (b *CommandBuffer) Ring(x, y, r, width float64, c Color) {
	b.commands = append(b.commands, RenderCommand{
		Type: CommandRing, X: float32(x), Y: float32(y), Radius: float32(r),
		Width: float32(width), Color: toColor32(c),
	})
}

// Polygon emits a filled convex polygon. pts is copied.
func (b *CommandBuffer) Polygon(pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	b.commands = append(b.commands, RenderCommand{
		Type: CommandPolygon, Color: toColor32(c), Points: b.appendPoints(pts),
	})
}

// Polyline emits an open stroke through pts. pts is copied.
func (b *CommandBuffer) Polyline(pts []Vec2, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	b.commands = append(b.commands, RenderCommand{
		Type: CommandPolyline, Width: float32(width), Color: toColor32(c), Points: b.appendPoints(pts),
	})
}

// appendPoints copies pts into the arena and returns the stored view.
func (b *CommandBuffer) appendPoints(pts []Vec2) []Vec2 {
	start := len(b.points)
	b.points = append(b.points, pts...)
	return b.points[start:len(b.points):len(b.points)]
}
