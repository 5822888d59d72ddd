package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/models"
	"github.com/color-game/palette/palette"
)

func newPaletteCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List, create, switch, rename and delete palettes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List palettes, marking the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			active := app.store.ActivePaletteName()
			for _, name := range app.store.PaletteNames() {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty palette and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.store.CreatePalette(cmd.Context(), args[0]) {
				return fmt.Errorf("palette %q is blank or already exists", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created palette %q\n", strings.TrimSpace(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "switch NAME",
		Aliases: []string{"load"},
		Short:   "Make an existing palette active",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.store.SwitchPalette(cmd.Context(), args[0]) {
				return fmt.Errorf("palette %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active palette is %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a palette",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.store.RenamePalette(cmd.Context(), args[0], args[1]) {
				return fmt.Errorf("cannot rename palette %q to %q", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed palette %q to %q\n", args[0], strings.TrimSpace(args[1]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.store.DeletePalette(cmd.Context(), args[0]) {
				return fmt.Errorf("palette %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted palette %q\n", args[0])
			return nil
		},
	})

	return cmd
}

func newColorCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Manage the base colors of the active palette",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List base colors of the active palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, color := range app.store.Colors() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", color.ID, color.Hex, color.Name)
			}
			return w.Flush()
		},
	})

	var addName string
	add := &cobra.Command{
		Use:   "add HEX",
		Short: "Add a base color unless it is too close to an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color := models.NewColor(args[0], addName)
			if !app.store.AddColor(cmd.Context(), color) {
				return fmt.Errorf("color %s was not added: invalid hex or too close to an existing color", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.ID)
			return nil
		},
	}
	add.Flags().StringVar(&addName, "name", "", "display name")
	cmd.AddCommand(add)

	var updateName string
	update := &cobra.Command{
		Use:   "update ID HEX",
		Short: "Change a base color and regenerate its variations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := updateName
			if !cmd.Flags().Changed("name") {
				name = currentName(app.store.Colors(), args[0])
			}
			if !app.store.UpdateColor(cmd.Context(), args[0], args[1], name) {
				return fmt.Errorf("cannot update color %q to %s", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated color %s\n", args[0])
			return nil
		},
	}
	update.Flags().StringVar(&updateName, "name", "", "display name (kept when omitted, cleared by --name \"\")")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove ID",
		Short: "Remove a base color and its variations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.store.RemoveColor(cmd.Context(), args[0]) {
				return fmt.Errorf("color %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed color %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func currentName(baseColors []models.Color, id string) string {
	for _, color := range baseColors {
		if color.ID == id {
			return color.Name
		}
	}
	return ""
}

func newFlatCmd(app *application) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "flat",
		Short: "Print the active palette's deduplicated flat color list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				data, err := app.store.ExportFlatColors()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			for _, hex := range app.store.GetFlatColors() {
				fmt.Fprintln(cmd.OutOrStdout(), hex)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")

	return cmd
}

func newExportCmd(app *application) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active palette as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := app.store.ExportToJSON()
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", app.store.ActivePaletteName(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to FILE instead of stdout")

	return cmd
}

func newImportCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an exported palette as a new active palette (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			name, err := app.store.ImportFromJSON(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported palette %q\n", name)
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "inspect HEX",
		Short:       "Show a color's HSL, contrast text color and generated variations",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := colors.Canonical(args[0])
			if err != nil {
				return err
			}

			rgb := colors.HexToRGB(hex)
			hsl := colors.HexToHSL(hex)
			vs := palette.NewVariationSet(hex)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "hex\t%s\n", hex)
			fmt.Fprintf(w, "rgb\t%d, %d, %d\n", rgb.R, rgb.G, rgb.B)
			fmt.Fprintf(w, "hsl\t%d, %d%%, %d%%\n", hsl.H, hsl.S, hsl.L)
			fmt.Fprintf(w, "contrast\t%s\n", colors.ContrastColor(hex))
			for _, family := range []struct {
				name  string
				hexes []string
			}{
				{"tints", vs.Tints},
				{"shades", vs.Shades},
				{"analogous", vs.Analogous},
				{"complementary", vs.Complementary},
				{"triadic", vs.Triadic},
				{"square", vs.Square},
				{"tetradic", vs.Tetradic},
				{"split-complementary", vs.SplitComplementary},
			} {
				fmt.Fprintf(w, "%s\t%s\n", family.name, strings.Join(family.hexes, " "))
			}
			return w.Flush()
		},
	}
}

func newThresholdCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "threshold VALUE",
		Short: "Recompute the active palette's flat list under a new similarity threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", args[0], err)
			}
			if math.IsNaN(value) {
				return fmt.Errorf("invalid threshold %q: not a number", args[0])
			}

			app.store.SetSimilarityThreshold(cmd.Context(), value)
			fmt.Fprintf(cmd.OutOrStdout(), "Threshold %g: %d flat colors in %q\n",
				app.store.SimilarityThreshold(), len(app.store.GetFlatColors()), app.store.ActivePaletteName())
			return nil
		},
	}
}
