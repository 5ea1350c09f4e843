// Command rtpdemo drives one media session's transmit and receive paths
// against each other over an in-memory pipe, demonstrating the library's
// intended two-goroutine-per-leg usage without owning a real socket
// (socket I/O is explicitly out of this core's scope; a caller wires
// this against its own UDP connection).
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sentiric/sentiric-rtp-core/mediasession"
	"github.com/sentiric/sentiric-rtp-core/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// demoFrameCount is how many 20ms frames the demo sends before stopping.
const demoFrameCount = 25

func main() {
	if err := run(); err != nil {
		logrus.WithFields(logrus.Fields{"function": "main"}).Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	prof := profile.New()
	preferred := prof.PreferredAudioCodec()

	tx, err := mediasession.New(preferred.PayloadType, 0xA11CE001, prof, nil)
	if err != nil {
		return fmt.Errorf("constructing tx session: %w", err)
	}
	defer tx.Close()

	rx, err := mediasession.New(preferred.PayloadType, 0xB0B00002, prof, nil)
	if err != nil {
		return fmt.Errorf("constructing rx session: %w", err)
	}
	defer rx.Close()

	wire := make(chan []byte, demoFrameCount)
	loopbackSrc := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5555}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(wire)
		samplesPerFrame := preferred.SamplesPerFrame(prof.PtimeMS)
		for i := 0; i < demoFrameCount; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx.Pacer.Wait()
			pcm := silenceFrame(samplesPerFrame)
			pkt, err := tx.EncodeFrame(pcm)
			if err != nil {
				return fmt.Errorf("encoding frame %d: %w", i, err)
			}
			raw, err := pkt.Marshal()
			if err != nil {
				return fmt.Errorf("marshaling frame %d: %w", i, err)
			}
			wire <- raw
		}
		return nil
	})

	g.Go(func() error {
		received := 0
		for raw := range wire {
			if err := rx.HandleInbound(raw, loopbackSrc); err != nil {
				return fmt.Errorf("handling inbound frame: %w", err)
			}
			if _, ok, err := rx.Pop(); err != nil {
				return fmt.Errorf("popping decoded frame: %w", err)
			} else if ok {
				received++
			}
		}
		logrus.WithFields(logrus.Fields{
			"function": "run",
			"received": received,
		}).Info("Demo receive loop drained")
		return nil
	})

	return g.Wait()
}

func silenceFrame(n int) []int16 {
	return make([]int16, n)
}
