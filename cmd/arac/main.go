// Package main provides the arac CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/born-ml/arac/internal/parallel"
	"github.com/born-ml/arac/nn"
)

const version = "v0.1.0-dev"

// demoConfig holds the settings of the demo command.
type demoConfig struct {
	Hidden int     // LSTM cells
	Steps  int     // Sequence length
	Epochs int     // Gradient descent iterations
	LR     float64 // Learning rate
	Seed   int64   // Weight initialization seed of the first run
	Runs   int     // Independent runs, seeded Seed, Seed+1, ...
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Hidden: 4,
		Steps:  20,
		Epochs: 100,
		LR:     0.05,
		Seed:   1,
		Runs:   1,
	}
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "arac %s\n", version)
		return nil
	case "demo":
		cfg := defaultDemoConfig()
		fs := flag.NewFlagSet("demo", flag.ContinueOnError)
		fs.SetOutput(w)
		fs.IntVar(&cfg.Hidden, "hidden", cfg.Hidden, "Number of LSTM cells")
		fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "Sequence length")
		fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Number of gradient descent iterations")
		fs.Float64Var(&cfg.LR, "lr", cfg.LR, "Learning rate")
		fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Weight initialization seed")
		fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "Number of independent runs trained in parallel")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		runs, err := runDemos(cfg, parallel.DefaultConfig())
		if err != nil {
			return err
		}
		if len(runs) == 1 {
			for i, loss := range runs[0] {
				if i%10 == 0 || i == len(runs[0])-1 {
					fmt.Fprintf(w, "epoch %4d  loss %.6f\n", i+1, loss)
				}
			}
			return nil
		}
		for i, losses := range runs {
			fmt.Fprintf(w, "seed %4d  loss %.6f -> %.6f\n", cfg.Seed+int64(i), losses[0], losses[len(losses)-1])
		}
		return nil
	default:
		usage(w)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "arac - neural network composition library")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  demo       Train an LSTM to predict the next value of a sine wave")
}

// newDemoNetwork builds input → LSTM → output with a bias and a recurrent
// connection on the LSTM output.
func newDemoNetwork(hidden int) (*nn.Network, error) {
	net := nn.NewNetwork()
	in, bias := nn.NewLinear(1), nn.NewBias()
	lstm, out := nn.NewLSTM(hidden), nn.NewLinear(1)
	net.AddModule(in, nn.RoleInput)
	net.AddModule(bias, nn.RoleHidden)
	net.AddModule(lstm, nn.RoleHidden)
	net.AddModule(out, nn.RoleOutput)

	comps := []nn.Component{net, in, bias, out}
	for _, pair := range [][2]nn.Module{{in, lstm}, {bias, lstm}, {lstm, out}, {bias, out}, {lstm, lstm}} {
		con, err := nn.NewFullConnection(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		comps = append(comps, con)
		net.AddConnection(con)
	}
	for _, c := range comps {
		c.SetMode(c.Mode() | nn.Sequential)
	}

	rec := comps[len(comps)-1].(nn.Connection)
	if err := rec.SetRecurrent(1); err != nil {
		return nil, err
	}
	return net, net.Sort()
}

// runDemos trains cfg.Runs networks concurrently and returns the losses of
// every run in seed order.
func runDemos(cfg demoConfig, pcfg parallel.Config) ([][]float64, error) {
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("demo: runs must be positive")
	}
	runs := make([][]float64, cfg.Runs)
	err := parallel.Run(cfg.Runs, func(i int) error {
		c := cfg
		c.Seed += int64(i)
		losses, err := runDemo(c)
		if err != nil {
			return fmt.Errorf("seed %d: %w", c.Seed, err)
		}
		runs[i] = losses
		return nil
	}, pcfg)
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// runDemo trains the demo network with plain gradient descent and returns
// the mean squared error of every epoch.
func runDemo(cfg demoConfig) ([]float64, error) {
	if cfg.Hidden <= 0 || cfg.Steps <= 0 || cfg.Epochs <= 0 {
		return nil, fmt.Errorf("demo: hidden, steps and epochs must be positive")
	}

	net, err := newDemoNetwork(cfg.Hidden)
	if err != nil {
		return nil, err
	}
	nn.InitNetwork(net, rand.New(rand.NewSource(cfg.Seed)))

	seq := make([]float64, cfg.Steps+1)
	for i := range seq {
		seq[i] = math.Sin(float64(i) * 0.3)
	}

	losses := make([]float64, 0, cfg.Epochs)
	pred := make([]float64, cfg.Steps)
	for range cfg.Epochs {
		net.Clear()
		net.ClearDerivatives()

		loss := 0.0
		for t := range cfg.Steps {
			pred[t] = net.Activate(seq[t : t+1])[0]
			d := pred[t] - seq[t+1]
			loss += d * d
		}
		for t := cfg.Steps - 1; t >= 0; t-- {
			net.BackActivate([]float64{2 * (pred[t] - seq[t+1]) / float64(cfg.Steps)})
		}

		for _, p := range net.Parameters() {
			data, grad := p.Data(), p.Derivatives()
			for i := range data {
				data[i] -= cfg.LR * grad[i]
			}
		}
		losses = append(losses, loss/float64(cfg.Steps))
	}
	return losses, nil
}
