// Package config loads the settings of the TLB simulator from the environment
// and from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/tlbsim/mem/vm"
	"github.com/sarchlab/tlbsim/mem/vm/tlb"
)

// Environment variables that the configuration reads.
const (
	EnvNumWays              = "TLBSIM_NUM_WAYS"
	EnvLog2NumPhysicalPages = "TLBSIM_LOG2_NUM_PHYSICAL_PAGES"
	EnvDB                   = "TLBSIM_DB"
	EnvTraceCSV             = "TLBSIM_TRACE_CSV"
	EnvMonitor              = "TLBSIM_MONITOR"
	EnvMonitorPort          = "TLBSIM_MONITOR_PORT"
)

// DefaultEnvFile is loaded by Load when no file is given. It is optional.
const DefaultEnvFile = ".env"

// Config holds the settings of a simulator run.
type Config struct {
	NumWays              int
	Log2NumPhysicalPages uint64
	DBPath               string
	TraceCSVPath         string
	Monitor              bool
	MonitorPort          int
}

// Default returns the configuration of the reference TLB: 4 entries and 2^14
// physical pages, with recording, tracing and monitoring off.
func Default() Config {
	return Config{
		NumWays:              tlb.DefaultNumWays,
		Log2NumPhysicalPages: vm.DefaultLog2NumPhysicalPages,
	}
}

// Load reads the given .env files into the environment and builds a Config
// from the environment. Variables already set in the environment take
// precedence over the files. Without files, Load reads DefaultEnvFile if it
// exists.
func Load(envFiles ...string) (Config, error) {
	err := loadEnvFiles(envFiles)
	if err != nil {
		return Config{}, err
	}

	return FromEnv()
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) == 0 {
		_, err := os.Stat(DefaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		envFiles = []string{DefaultEnvFile}
	}

	err := godotenv.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("loading env files %v: %w", envFiles, err)
	}

	return nil
}

// FromEnv builds a Config from the environment variables, falling back to the
// defaults for unset variables.
func FromEnv() (Config, error) {
	c := Default()

	var err error

	c.NumWays, err = intFromEnv(EnvNumWays, c.NumWays)
	if err != nil {
		return Config{}, err
	}

	if c.NumWays < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d",
			EnvNumWays, c.NumWays)
	}

	c.Log2NumPhysicalPages, err = uintFromEnv(
		EnvLog2NumPhysicalPages, c.Log2NumPhysicalPages)
	if err != nil {
		return Config{}, err
	}

	if c.Log2NumPhysicalPages >= 64 {
		return Config{}, fmt.Errorf("%s must be less than 64, got %d",
			EnvLog2NumPhysicalPages, c.Log2NumPhysicalPages)
	}

	c.DBPath = os.Getenv(EnvDB)
	c.TraceCSVPath = os.Getenv(EnvTraceCSV)

	c.Monitor, err = boolFromEnv(EnvMonitor, c.Monitor)
	if err != nil {
		return Config{}, err
	}

	c.MonitorPort, err = intFromEnv(EnvMonitorPort, c.MonitorPort)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}

	return n, nil
}

func uintFromEnv(name string, fallback uint64) (uint64, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return fallback, nil
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}

	return n, nil
}

func boolFromEnv(name string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}

	return b, nil
}
