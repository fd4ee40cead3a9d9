// Command gslc translates one of the bundled demo shader procedures to
// GLSL-450 source text.
//
// Usage:
//
//	gslc [options] <shader>
//
// Examples:
//
//	gslc passthrough                  # Print GLSL to stdout
//	gslc -o shader.frag constant      # Compile to a file
//	gslc -stage fragment mvp          # Override the inferred stage
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gogpu/gsl"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	stageFlag   = flag.String("stage", "", "override the shader's default stage (vertex|fragment|compute)")
	versionFlag = flag.Bool("version", false, "print version")
)

// shaders is the registry of bundled demo procedures, keyed by name, along
// with the stage each is meant to run in.
var shaders = map[string]struct {
	stage gsl.Stage
	fn    gsl.ShaderFunc
}{
	"passthrough": {gsl.StageVertex, passThroughVertex},
	"constant":    {gsl.StageFragment, constantFragment},
	"mvp":         {gsl.StageVertex, mvpVertex},
}

func passThroughVertex(b *gsl.Builder) {
	pos := b.InputVec3(0)
	color := b.InputVec4(1)
	b.Position(gsl.NewVec4FromVec3(pos, gsl.F32Const(1)))
	b.Output(0, color)
}

func constantFragment(b *gsl.Builder) {
	b.Output(0, gsl.Vec4Const(1, 0, 0, 1))
}

func mvpVertex(b *gsl.Builder) {
	pos := b.InputVec3(0)
	normal := b.InputVec3(1)
	pc := b.PushConstants()
	model, view, proj := pc.Mat4(), pc.Mat4(), pc.Mat4()
	world := gsl.NewVec4FromVec3(pos, gsl.F32Const(1))
	b.Position(proj.Mul(view).Mul(model).MulVec4(world))
	b.Output(0, normal)
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("gslc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no shader name specified")
		usage()
		os.Exit(1)
	}

	name := args[0]
	shader, ok := shaders[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown shader %q\n", name)
		usage()
		os.Exit(1)
	}

	stage := shader.stage
	switch *stageFlag {
	case "":
	case "vertex":
		stage = gsl.StageVertex
	case "fragment":
		stage = gsl.StageFragment
	case "compute":
		stage = gsl.StageCompute
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown stage %q\n", *stageFlag)
		os.Exit(1)
	}

	src, err := gsl.Translate(stage, shader.fn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(src), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully compiled %s to %s (%d bytes)\n", name, *output, len(src))
		return
	}

	_, _ = os.Stdout.WriteString(src)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gslc [options] <shader>\n\n")
	fmt.Fprintf(os.Stderr, "Shaders: passthrough, constant, mvp\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  gslc passthrough           Compile to stdout\n")
	fmt.Fprintf(os.Stderr, "  gslc -o out.frag constant  Compile to file\n")
}
