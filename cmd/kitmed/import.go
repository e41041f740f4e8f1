package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/fekuna/kitmed-catalog-service/internal/importer/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importDryRun      bool
	importAttachments string
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import products from a spreadsheet",
	Long: `Upserts products by SKU from a CSV or XLSX sheet. Image and datasheet
cells may name files found in --attachments; those are uploaded once and
deduplicated by content hash.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate the sheet without writing anything")
	importCmd.Flags().StringVar(&importAttachments, "attachments", "", "directory holding images and datasheets referenced by the sheet")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	input := &dto.ImportInput{FileName: filepath.Base(args[0]), Content: f}
	if importAttachments != "" {
		input.Attachments, err = dirAttachments(importAttachments)
		if err != nil {
			return err
		}
	}

	a, err := newApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	var out interface{}
	if importDryRun {
		report, err := a.importer.Validate(cmd.Context(), input)
		if err != nil {
			return err
		}
		appLogger.Info("Sheet validated", zap.Int("valid", report.ValidRows), zap.Int("invalid", report.InvalidRows))
		dto.Localize(report.Errors, a.translate)
		out = report
	} else {
		result, err := a.importer.Import(cmd.Context(), input)
		if err != nil {
			return err
		}
		appLogger.Info("Sheet imported",
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped))
		dto.Localize(result.Errors, a.translate)
		out = result
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dirAttachments(dir string) ([]dto.Attachment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read attachments: %w", err)
	}
	var out []dto.Attachment
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		out = append(out, dto.Attachment{
			FileName: e.Name(),
			MimeType: mime.TypeByExtension(filepath.Ext(e.Name())),
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}
	return out, nil
}
