// Package runtime wires the supervisor's tick loop, the joystick worker,
// and the vehicle attitude fan-in together as the cooperative process
// cmd/swarmctl runs, per spec §5's concurrency model: one goroutine feeds
// tracker frames into the supervisor's single-threaded Tick, side workers
// only ever mutate the swarm's shared manual axes or call Demote/EnterX
// methods that are safe to call from outside a Tick.
package runtime

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/picogrid/swarmcore/internal/joystick"
	"github.com/picogrid/swarmcore/internal/swarm"
	"github.com/picogrid/swarmcore/internal/tracker"
	"github.com/picogrid/swarmcore/internal/vehicle"
)

// Options bundles everything Run needs beyond the supervisor itself.
type Options struct {
	Frames   <-chan tracker.Frame
	Joystick *joystick.Controller
	Device   joystick.Device // nil disables the joystick worker
	Links    map[string]vehicle.Link
}

// Run drives the supervisor until ctx is cancelled, a tracker frame source
// closes its channel, or any worker returns an error. All workers are
// cancelled together: an overrun or a closed tracker channel stops the
// joystick worker too, and vice versa, matching §5's "cancel the whole
// loop, never leave one worker running against a dead swarm" requirement.
// The returned error also carries every fault still latched on an agent in
// the swarm at shutdown, so a run with a latched fault never returns nil.
func Run(ctx context.Context, sup *swarm.Supervisor, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer cancel()
		for {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			case frame, ok := <-opts.Frames:
				if !ok {
					return nil
				}
				if err := sup.Tick(egCtx, frame); err != nil {
					return err
				}
			}
		}
	})

	if opts.Device != nil && opts.Joystick != nil {
		eg.Go(func() error {
			defer cancel()
			err := opts.Joystick.Run(egCtx, opts.Device)
			if err == context.Canceled {
				return nil
			}
			return err
		})
	}

	for name, link := range opts.Links {
		name, link := name, link
		eg.Go(func() error {
			samples, err := link.SubscribeAttitudeLog(egCtx)
			if err != nil {
				// A single vehicle's telemetry subscription failing
				// disables that vehicle (caught next tick via SendExtPos)
				// rather than tearing down the whole run.
				return nil
			}
			for {
				select {
				case <-egCtx.Done():
					return nil
				case sample, ok := <-samples:
					if !ok {
						return nil
					}
					select {
					case sup.Attitudes <- swarm.NamedAttitude{Name: name, Sample: sample}:
					case <-egCtx.Done():
						return nil
					}
				}
			}
		})
	}

	err := eg.Wait()
	joystick.StopAll(context.Background(), sup.Swarm, opts.Links)

	errs := []error{err}
	for _, a := range sup.Swarm.Agents() {
		if a.Error != nil {
			errs = append(errs, a.Error)
		}
	}
	return errors.Join(errs...)
}
