// Package main provides the roseingrave CLI: it builds score-tracking
// workbooks from piece definitions and exports filled workbooks back to
// structured data.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephlou5/roseingrave"
)

var (
	templatePath string
	piecesPath   string
	dataPath     string
	outputPath   string
	filterExpr   string
	masterMode   bool
	noFormat     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roseingrave",
		Short: "Build and parse score-tracking spreadsheets",
		Long: `roseingrave builds score-tracking workbooks for musical pieces
(one sheet per piece, one column per source, one row per bar) and exports
filled workbooks back into structured JSON data.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&templatePath, "template", "t", "template.yaml", "Template definitions file")

	createCmd := &cobra.Command{
		Use:   "create [output.xlsx]",
		Short: "Create a workbook with one sheet per piece",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}
	createCmd.Flags().StringVarP(&piecesPath, "pieces", "p", "pieces.yaml", "Pieces definition file")
	createCmd.Flags().StringVar(&filterExpr, "filter", "", `Piece filter expression, e.g. 'barCount > 10'`)
	createCmd.Flags().BoolVar(&noFormat, "no-format", false, "Skip formatting, write values only")

	masterCmd := &cobra.Command{
		Use:   "master [output.xlsx]",
		Short: "Create the aggregated master workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runMaster,
	}
	masterCmd.Flags().StringVarP(&piecesPath, "pieces", "p", "pieces.yaml", "Pieces definition file")
	masterCmd.Flags().StringVarP(&dataPath, "data", "d", "data.yaml", "Aggregated contribution data file")
	masterCmd.Flags().StringVar(&filterExpr, "filter", "", "Piece filter expression")
	masterCmd.Flags().BoolVar(&noFormat, "no-format", false, "Skip formatting, write values only")

	exportCmd := &cobra.Command{
		Use:   "export [input.xlsx]",
		Short: "Export a workbook back to structured JSON data",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&masterMode, "master", false, "Parse sheets in the master layout")

	rootCmd.AddCommand(createCmd, masterCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInputs() (*roseingrave.Template, []*roseingrave.Piece, error) {
	tmpl, err := roseingrave.LoadTemplate(templatePath)
	if err != nil {
		return nil, nil, err
	}
	pieces, err := roseingrave.LoadPieces(piecesPath, tmpl)
	if err != nil {
		return nil, nil, err
	}
	filter, err := roseingrave.CompilePieceFilter(filterExpr)
	if err != nil {
		return nil, nil, err
	}
	selected := pieces[:0]
	for _, piece := range pieces {
		ok, err := filter.Match(piece)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			slog.Debug("filtered out piece", "title", piece.Name())
			continue
		}
		selected = append(selected, piece)
	}
	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("no pieces selected")
	}
	return tmpl, selected, nil
}

func workbookOptions() []roseingrave.Option {
	var opts []roseingrave.Option
	if noFormat {
		opts = append(opts, roseingrave.WithFormatting(false))
	}
	return opts
}

func runCreate(cmd *cobra.Command, args []string) error {
	tmpl, pieces, err := loadInputs()
	if err != nil {
		return err
	}

	wb := roseingrave.NewWorkbook(tmpl, workbookOptions()...)
	defer wb.Close()
	for _, piece := range pieces {
		name, err := wb.CreatePieceSheet(piece)
		if err != nil {
			return err
		}
		slog.Info("created sheet", "sheet", name, "bars", piece.FinalBarCount())
	}
	if err := wb.Save(args[0]); err != nil {
		return err
	}
	slog.Info("wrote workbook", "path", args[0], "pieces", len(pieces))
	return nil
}

func runMaster(cmd *cobra.Command, args []string) error {
	tmpl, pieces, err := loadInputs()
	if err != nil {
		return err
	}
	pieceData, err := roseingrave.LoadPieceData(dataPath)
	if err != nil {
		return err
	}

	wb := roseingrave.NewWorkbook(tmpl, workbookOptions()...)
	defer wb.Close()
	for _, piece := range pieces {
		data, ok := pieceData[piece.Name()]
		if !ok {
			return fmt.Errorf("no contribution data for piece %q", piece.Name())
		}
		name, err := wb.CreateMasterSheet(piece, data)
		if err != nil {
			return err
		}
		slog.Info("created master sheet", "sheet", name)
	}
	if err := wb.Save(args[0]); err != nil {
		return err
	}
	slog.Info("wrote master workbook", "path", args[0], "pieces", len(pieces))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	tmpl, err := roseingrave.LoadTemplate(templatePath)
	if err != nil {
		return err
	}
	wb, err := roseingrave.OpenWorkbook(args[0], tmpl)
	if err != nil {
		return err
	}
	defer wb.Close()

	// a bad sheet doesn't stop the rest of the workbook
	exported := []any{}
	failed := 0
	for _, sheetName := range wb.SheetNames() {
		grid, err := wb.ReadGrid(sheetName)
		if err != nil {
			return err
		}
		var data any
		if masterMode {
			data, err = roseingrave.ExportMasterSheet(sheetName, grid, tmpl)
		} else {
			data, err = roseingrave.ExportSheet(sheetName, grid, tmpl)
		}
		if err != nil {
			slog.Warn("skipping sheet", "sheet", sheetName, "error", err)
			failed++
			continue
		}
		exported = append(exported, data)
	}
	if failed > 0 {
		slog.Warn("some sheets failed to export", "failed", failed)
	}

	out, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if outputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return err
	}
	slog.Info("wrote export", "path", outputPath, "sheets", len(exported))
	return nil
}
