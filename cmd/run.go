package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/loopholelabs/podcomm/pkg/pod/config"
	"github.com/loopholelabs/podcomm/pkg/pod/metrics"
	podprom "github.com/loopholelabs/podcomm/pkg/pod/metrics/prometheus"
	"github.com/loopholelabs/podcomm/pkg/pod/protocol"
	"github.com/loopholelabs/podcomm/pkg/pod/transcript"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Send every command in a script and archive the transcripts",
		Long:  ``,
		RunE:  runRun,
	}
)

var runScript string
var runArchive string
var runMetrics string

func init() {
	rootCmd.AddCommand(cmdRun)
	cmdRun.Flags().StringVarP(&runScript, "script", "s", "podcomm.hcl", "Script file")
	cmdRun.Flags().StringVarP(&runArchive, "archive", "a", "memory", "Archive (memory, sqlite or s3)")
	cmdRun.Flags().StringVarP(&runMetrics, "metrics", "m", "", "Prom metrics address")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	log, err := newLogger("podcomm.run", env)
	if err != nil {
		return err
	}

	script, err := config.ReadScript(runScript)
	if err != nil {
		return err
	}

	arch, err := openArchive(ctx, runArchive, env)
	if err != nil {
		return err
	}
	defer arch.Close()

	var podMetrics metrics.PodMetrics
	if runMetrics != "" {
		reg := prometheus.NewRegistry()

		pm := podprom.New(reg, podprom.DefaultConfig())
		defer pm.Shutdown()
		podMetrics = pm

		// Add the default go metrics
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(
			reg,
			promhttp.HandlerOpts{
				EnableOpenMetrics: true,
				Registry:          reg,
			},
		))

		go func() {
			err := http.ListenAndServe(runMetrics, mux)
			if err != nil {
				log.Error().Err(err).Str("addr", runMetrics).Msg("metrics server stopped")
			}
		}()
	}

	// Nothing on the radio side yet, so blocks land on a loopback.
	loopback := protocol.NewMockTransport()
	defer loopback.Close()

	out := cmd.OutOrStdout()
	for _, pod := range script.Pod {
		address, err := pod.AddressValue()
		if err != nil {
			return err
		}
		blocks, err := pod.MessageBlocks()
		if err != nil {
			return err
		}

		tr := transcript.New(address)
		logger := protocol.NewLogger(pod.Name, loopback, log)
		tp := protocol.NewToPod(address, protocol.NewRecorder(logger, tr))

		if podMetrics != nil {
			podMetrics.AddToPod(pod.Name, tp)
			podMetrics.AddLogger(pod.Name, logger)
		}

		err = tp.Send(ctx, blocks...)

		met := tp.GetMetrics()
		log.Info().
			Str("pod", pod.Name).
			Uint64("BlocksSent", met.BlocksSent).
			Uint64("BytesSent", met.BytesSent).
			Uint64("SendErrors", met.SendErrors).
			Msg("ToPod metrics")

		if err != nil {
			return fmt.Errorf("pod %s: %w", pod.Name, err)
		}

		err = arch.Put(ctx, tr)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s 0x%08x %d blocks\n", tr.ID, pod.Name, address, tr.Len())

		if podMetrics != nil {
			podMetrics.RemoveToPod(pod.Name)
			podMetrics.RemoveLogger(pod.Name)
		}
	}

	if runMetrics != "" {
		// Keep serving the final values until told to stop
		log.Info().Str("addr", runMetrics).Msg("serving metrics until interrupted")
		<-ctx.Done()
	}

	return nil
}
