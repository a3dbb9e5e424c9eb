package main

import (
	"context"
	"fmt"
	"os"

	"github.com/loopholelabs/logging"
	"github.com/loopholelabs/logging/types"
	"github.com/loopholelabs/podcomm/pkg/pod/archive"
	"github.com/loopholelabs/podcomm/pkg/pod/config"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "podcomm",
		Short:         "podcomm message block tooling.",
		Long:          ``,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

var rootDebug bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootDebug, "debug", "d", false, "Debug logging (trace)")
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(name string, env *config.Env) (types.RootLogger, error) {
	log := logging.New(logging.Zerolog, name, os.Stderr)
	if rootDebug {
		log.SetLevel(types.TraceLevel)
		return log, nil
	}
	level, err := env.Level()
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	return log, nil
}

func openArchive(ctx context.Context, kind string, env *config.Env) (archive.Archive, error) {
	switch kind {
	case "memory":
		return archive.NewMemoryArchive(), nil
	case "sqlite":
		return archive.NewSQLiteArchive(env.SQLitePath)
	case "s3":
		if !env.HasS3() {
			return nil, fmt.Errorf("s3 archive needs PODCOMM_S3_ENDPOINT")
		}
		return archive.NewS3Archive(ctx, env.S3Endpoint, env.S3AccessKey, env.S3SecretKey, env.S3Bucket, env.S3Prefix, env.S3Secure)
	}
	return nil, fmt.Errorf("unknown archive %q", kind)
}
