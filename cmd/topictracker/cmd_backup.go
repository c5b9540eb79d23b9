package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jyoon/topic-tracker/internal/model"
	"github.com/jyoon/topic-tracker/internal/store"
)

// exportCmd writes every stored record to a single JSON document.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all stored records as JSON (stdout if no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, closeFn, err := openKV()
		if err != nil {
			return err
		}
		defer closeFn()

		backup := make(map[string]json.RawMessage)
		for _, key := range store.AllKeys() {
			raw, ok, err := kv.Raw(key)
			if err != nil {
				return err
			}
			if ok {
				backup[key] = json.RawMessage(raw)
			}
		}

		out, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding backup: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(string(out))
			return nil
		}
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return fmt.Errorf("writing backup to %s: %w", args[0], err)
		}
		logger.Info("backup written",
			zap.String("file", args[0]), zap.Int("records", len(backup)))
		return nil
	},
}

// importCmd restores records from a JSON document produced by export.
// Keys not present in the backup are left untouched.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from a JSON backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading backup %s: %w", args[0], err)
		}

		var backup map[string]json.RawMessage
		if err := json.Unmarshal(data, &backup); err != nil {
			return fmt.Errorf("parsing backup %s: %w", args[0], err)
		}

		kv, closeFn, err := openKV()
		if err != nil {
			return err
		}
		defer closeFn()

		restored := 0
		for _, key := range store.AllKeys() {
			raw, ok := backup[key]
			if !ok {
				continue
			}
			if err := kv.PutRaw(key, string(raw)); err != nil {
				return err
			}
			restored++
		}

		logger.Info("backup restored",
			zap.String("file", args[0]), zap.Int("records", restored))
		return nil
	},
}

// openKV opens the raw key-value store for backup operations, without
// loading any of the domain stores on top of it.
func openKV() (*store.SQLiteKV, func(), error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	kv, err := store.NewSQLiteKV(cfg.StoragePath, logger)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() { _ = kv.Close() }, nil
}
