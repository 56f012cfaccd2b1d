package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chazu/lignin/pkg/meshio"
	"github.com/chazu/lignin/pkg/reconstruct"
	"github.com/chazu/lignin/pkg/script"
	"github.com/spf13/cobra"
)

var (
	outPath     string
	fitWeight   float64
	covWeight   float64
	cmplxWeight float64
	margin      float64
	bboxFaces   bool
	timeLimit   time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [scene.poly]",
	Short: "Reconstruct a mesh from a scene script and write it out",
	Long: `run evaluates a scene script (the Lisp DSL in pkg/script, declaring
planar segments and optional configuration), runs the reconstruction
pipeline, and writes the resulting mesh to --out in the format implied by
its extension (.obj or .3mf).`,
	Args: cobra.ExactArgs(1),
	RunE: runReconstruct,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&outPath, "out", "o", "out.obj", "output mesh path (.obj or .3mf)")
	runCmd.Flags().Float64Var(&fitWeight, "fit", 0, "BIP fit weight override (0 uses the script's or the default)")
	runCmd.Flags().Float64Var(&covWeight, "coverage", 0, "BIP coverage weight override")
	runCmd.Flags().Float64Var(&cmplxWeight, "complexity", 0, "BIP complexity weight override")
	runCmd.Flags().Float64Var(&margin, "margin", 0, "bounding box inflation fraction override")
	runCmd.Flags().BoolVar(&bboxFaces, "include-bbox-faces", false, "add the bounding box's own planes as closable candidate faces")
	runCmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "solver wall-clock budget (0 = unlimited)")
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading scene: %w", err)
	}

	in := script.NewInterpreter()
	scene, evalErrs, err := in.Eval(string(source))
	if err != nil {
		return fmt.Errorf("evaluating scene: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "scene error: %v\n", e)
		}
		return fmt.Errorf("scene %s failed to evaluate", args[0])
	}

	cfg := scene.Config
	if fitWeight != 0 {
		cfg.Weights.Fit = fitWeight
	}
	if covWeight != 0 {
		cfg.Weights.Cov = covWeight
	}
	if cmplxWeight != 0 {
		cfg.Weights.Complexity = cmplxWeight
	}
	if margin != 0 {
		cfg.Margin = margin
	}
	if bboxFaces {
		cfg.IncludeBBoxFaces = true
	}
	if timeLimit != 0 {
		cfg.TimeLimit = timeLimit
	}

	mesh, diag, err := reconstruct.Reconstruct(scene.Segments, cfg)
	if err != nil {
		rerr, ok := err.(*reconstruct.Error)
		if !ok || rerr.Kind != reconstruct.EmptyResult {
			return fmt.Errorf("reconstruct: %w", err)
		}
		fmt.Fprintf(os.Stderr, "reconstruct: %v\n", err)
	}

	fmt.Printf("reconstruct: %d/%d faces selected, objective=%.4f, status=%v, took %v\n",
		diag.SelectedFaces, diag.TotalFaces, diag.Objective, diag.SolverStatus, diag.TotalTime)

	if err := writeMesh(outPath, *mesh); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	fmt.Printf("wrote %s (%d vertices, %d faces)\n", outPath, mesh.VertexCount(), mesh.FaceCount())
	return nil
}

func writeMesh(path string, mesh meshio.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".3mf":
		return meshio.Write3MF(f, mesh)
	case ".obj", "":
		return meshio.WriteOBJ(f, mesh)
	default:
		return fmt.Errorf("unrecognized mesh extension %q (want .obj or .3mf)", filepath.Ext(path))
	}
}
