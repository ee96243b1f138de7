package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"shortnum/internal/config"
	"shortnum/internal/metadata"
	"shortnum/internal/pattern"
	"shortnum/internal/shortnum"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger

	// Validator built once in PersistentPreRunE, shared by all commands.
	validator *shortnum.Validator
	store     *metadata.Store
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shortnum",
	Short: "shortnum - short phone number validation",
	Long: `shortnum validates and classifies short telephone numbers (emergency
numbers, short codes) against per-region dialing rules.

It answers three questions: is a number possibly a short number for a
region, is it valid there, and does a dialed string reach an emergency
number. Metadata ships embedded in the binary; point metadata_path in the
config at a YAML document to use your own.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			level, err := zapcore.ParseLevel(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to parse log level: %w", err)
			}
			zapCfg.Level = zap.NewAtomicLevelAt(level)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cache := pattern.NewCache(cfg.CacheCapacity)
		if cfg.MetadataPath != "" {
			doc, err := os.ReadFile(cfg.MetadataPath)
			if err != nil {
				return fmt.Errorf("failed to read metadata: %w", err)
			}
			store, err = metadata.Load(doc, cache, logger)
			if err != nil {
				return err
			}
		} else {
			store, err = metadata.LoadDefault(cache, logger)
			if err != nil {
				return err
			}
		}
		validator = shortnum.New(store, cache)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// checkCmd reports possibility and validity for one number
var checkCmd = &cobra.Command{
	Use:   "check [calling-code] [national-number]",
	Short: "Check whether a number is a possible/valid short number",
	Long: `Checks the number against the regions registered for its calling code.
With --region, the checks run against that region alone; otherwise the
region is resolved from the calling code.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

// emergencyCmd reports emergency matching for a dialed string
var emergencyCmd = &cobra.Command{
	Use:   "emergency [dialed] --region XX",
	Short: "Check a dialed string against a region's emergency numbers",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmergency,
}

// regionsCmd lists candidate regions for a calling code
var regionsCmd = &cobra.Command{
	Use:   "regions [calling-code]",
	Short: "List candidate regions for a calling code, principal first",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegions,
}

var (
	checkRegion     string
	emergencyRegion string
)

func runCheck(cmd *cobra.Command, args []string) error {
	n, err := parseNumber(args[0], args[1])
	if err != nil {
		return err
	}

	var possible, valid bool
	if checkRegion != "" {
		possible = validator.IsPossible(n, shortnum.Explicit(checkRegion))
		valid = validator.IsValid(n, shortnum.Explicit(checkRegion))
	} else {
		possible = validator.IsPossible(n, shortnum.FromCallingCode())
		valid = validator.IsValid(n, shortnum.FromCallingCode())
	}

	logger.Debug("check complete",
		zap.Int("calling_code", n.CountryCode),
		zap.String("national", n.NationalSignificantNumber()),
		zap.String("region", checkRegion))

	fmt.Printf("number:   +%d %s\n", n.CountryCode, n.NationalSignificantNumber())
	if checkRegion != "" {
		fmt.Printf("region:   %s\n", checkRegion)
	}
	fmt.Printf("possible: %v\n", possible)
	fmt.Printf("valid:    %v\n", valid)
	return nil
}

func runEmergency(cmd *cobra.Command, args []string) error {
	dialed := args[0]
	exact := validator.IsEmergencyNumber(dialed, emergencyRegion)
	connects := validator.ConnectsToEmergencyNumber(dialed, emergencyRegion)

	fmt.Printf("dialed:   %s\n", dialed)
	fmt.Printf("region:   %s\n", emergencyRegion)
	fmt.Printf("exact:    %v\n", exact)
	fmt.Printf("connects: %v\n", connects)
	return nil
}

func runRegions(cmd *cobra.Command, args []string) error {
	code, err := parseCallingCode(args[0])
	if err != nil {
		return err
	}
	regions := store.RegionsForCallingCode(code)
	if len(regions) == 0 {
		fmt.Printf("no regions registered for calling code %d\n", code)
		return nil
	}
	for i, region := range regions {
		if i == 0 {
			fmt.Printf("%s (principal)\n", region)
		} else {
			fmt.Println(region)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "shortnum.yaml", "path to config file")

	checkCmd.Flags().StringVar(&checkRegion, "region", "", "check against this region only")
	emergencyCmd.Flags().StringVar(&emergencyRegion, "region", "", "region to check against (required)")
	_ = emergencyCmd.MarkFlagRequired("region")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(emergencyCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
