//go:build !nogl

package opengl

import (
	"embed"
	"fmt"
	"unsafe"

	"github.com/PrincetonUniversity/boids"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed shaders
var shaders embed.FS

// Run runs an interactive simulation in an OpenGL window.
// The window size is the size of the world: s.Env.Size is replaced
// by a function returning the current window size.
func Run(s *boids.Simulation, conf *Config) error {
	log := conf.Log
	if log == nil {
		log = zap.NewNop()
	}

	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "opengl: init glfw")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	title := conf.Title
	if title == "" {
		title = "Boids"
	}
	w, err := glfw.CreateWindow(conf.Width, conf.Height, title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "opengl: create window")
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "opengl: init gl")
	}
	log.Info("opengl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	// the simulation samples the window once per step
	s.Env.Size = func() (float64, float64) {
		x, y := w.GetSize()
		return float64(x), float64(y)
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	// initialize OpenGL objects
	d, err := newDisplay(len(s.Swarm))
	if err != nil {
		return err
	}

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
	})

	for !(quit || w.ShouldClose()) {
		if step {
			pause = true
			step = false
			if err := conf.Step(); err != nil {
				return err
			}
		}
		if !pause {
			if err := conf.Step(); err != nil {
				return err
			}
		}
		d.draw(s.Swarm, w)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	log.Info("window closed", zap.Int("ticks", s.Ticks()))
	return nil
}

// vertex is the per boid data sent to OpenGL.
type vertex struct {
	X, Y float32 // position
	Size float32 // diameter
}

// display contains all the OpenGL objects required to display the simulation.
type display struct {
	vao  uint32 // vertex array object
	prog uint32
	attr struct {
		pos  uint32
		size uint32
	}
	buf uint32 // boid vertices
	uni struct {
		extent int32 // half extent of the world
		scale  int32 // framebuffer pixels per world unit
	}
	data []vertex
}

// draw updates the OpenGL buffers and draws the boids on screen.
func (d *display) draw(p []boids.Boid, w *glfw.Window) {
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))

	gl.UseProgram(d.prog)
	gl.Uniform2f(d.uni.extent, float32(ww)/2, float32(wh)/2)
	scale := float32(1)
	if ww > 0 {
		scale = float32(fw) / float32(ww)
	}
	gl.Uniform1f(d.uni.scale, scale)

	d.updateBoids(p)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(len(d.data)))
}

// updateBoids updates the OpenGL buffer containing boid positions and sizes.
func (d *display) updateBoids(p []boids.Boid) {
	d.data = d.data[:0]
	for _, b := range p {
		d.data = append(d.data, vertex{X: float32(b.Pos.X), Y: float32(b.Pos.Y), Size: float32(b.Size.X)})
	}
	if len(d.data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(d.data)*int(unsafe.Sizeof(vertex{})), gl.Ptr(d.data))
}

// newDisplay compiles shaders and initializes a display.
func newDisplay(swarmSize int) (*display, error) {
	d := &display{data: make([]vertex, 0, swarmSize)}

	// compile and link shaders
	var err error
	d.prog, err = makeProg([]shader{
		{"Vertex", "shaders/boid.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "shaders/boid.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.uni.extent = gl.GetUniformLocation(d.prog, gl.Str("extent\x00"))
	d.uni.scale = gl.GetUniformLocation(d.prog, gl.Str("scale\x00"))

	// attribute locations are specified in the shaders with layout(location=n)
	d.attr.pos, d.attr.size = 0, 1

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf)
	gl.BufferData(gl.ARRAY_BUFFER, max(swarmSize, 1)*int(unsafe.Sizeof(vertex{})), nil, gl.STREAM_DRAW)

	const n = int32(unsafe.Sizeof(vertex{}))

	gl.EnableVertexAttribArray(d.attr.pos)
	gl.VertexAttribPointerWithOffset(d.attr.pos, 2, gl.FLOAT, false, n, unsafe.Offsetof(vertex{}.X))

	gl.EnableVertexAttribArray(d.attr.size)
	gl.VertexAttribPointerWithOffset(d.attr.size, 1, gl.FLOAT, false, n, unsafe.Offsetof(vertex{}.Size))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return d, nil
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	path   string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(list []shader) (uint32, error) {
	var fail bool
	for _, s := range list {
		src, err := readShader(s.path)
		if err != nil {
			return 0, err
		}
		str, free := gl.Strs(src + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error: %s ###\n\n%s\n\n", s.name, s.path, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, errors.New("opengl: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range list {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		return 0, errors.New("opengl: cannot link shaders")
	}
	return prog, nil
}

// readShader returns the source of an embedded shader.
func readShader(path string) (string, error) {
	b, err := shaders.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "opengl: read shader %s", path)
	}
	return string(b), nil
}
