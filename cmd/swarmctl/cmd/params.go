package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/picogrid/swarmcore/internal/paramsfile"
	"github.com/picogrid/swarmcore/pkg/logger"
)

var paramsFile string

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Validate a parameters file and print its entries",
	RunE:  runParams,
}

func init() {
	paramsCmd.Flags().StringVar(&paramsFile, "file", "", "parameters file to validate")
}

func runParams(_ *cobra.Command, _ []string) error {
	if paramsFile == "" {
		return fmt.Errorf("--file is required")
	}
	f, err := os.Open(paramsFile)
	if err != nil {
		return fmt.Errorf("open parameters file: %w", err)
	}
	defer f.Close()

	entries, err := paramsfile.Read(f)
	if err != nil {
		return fmt.Errorf("invalid parameters file: %w", err)
	}

	t := logger.NewTable("name", "init_x", "init_y", "init_z", "takeoff_z", "manual", "enabled")
	for _, e := range entries {
		t.AddRow(e.Name, fmt.Sprint(e.InitX), fmt.Sprint(e.InitY), fmt.Sprint(e.InitZ),
			fmt.Sprint(e.TakeoffZ), fmt.Sprint(e.ManualFlag), fmt.Sprint(e.EnabledFlag))
	}
	logger.LogSection(fmt.Sprintf("%d agent entries", len(entries)))
	t.Print()
	return nil
}
