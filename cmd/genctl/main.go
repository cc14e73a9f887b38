// Command genctl is a small terminal front end for the generative library:
// it sends a prompt, streams the reply to stdout, and can count or estimate
// prompt tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lumonlabs/generative"
)

type options struct {
	Model   string        `short:"m" long:"model" default:"prism-1-pro" description:"Model to generate with"`
	Key     string        `short:"k" long:"key" env:"GENERATIVE_API_KEY" description:"API key (or GENERATIVE_API_KEY)"`
	BaseURL string        `long:"base-url" description:"Override the backend endpoint"`
	Stream  bool          `short:"s" long:"stream" description:"Stream the reply incrementally"`
	Count   bool          `short:"c" long:"count" description:"Count prompt tokens instead of generating"`
	Offline bool          `long:"offline" description:"With --count, estimate locally without a network call"`
	Timeout time.Duration `long:"timeout" default:"60s" description:"Per-request timeout"`
	Retries int           `long:"retries" default:"2" description:"Retries for rate-limited or failed requests"`
	Verbose bool          `short:"v" long:"verbose" description:"Log transport activity"`

	Args struct {
		Prompt []string `positional-arg-name:"prompt" required:"1"`
	} `positional-args:"true"`
}

func main() {
	// .env is optional; flags and the environment win.
	_ = godotenv.Load()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "genctl:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var parts []generative.Part
	for _, p := range opts.Args.Prompt {
		parts = append(parts, generative.Text(p))
	}

	if opts.Count && opts.Offline {
		est, err := generative.NewTokenEstimator()
		if err != nil {
			return err
		}
		n, err := est.Estimate(parts...)
		if err != nil {
			return err
		}
		fmt.Printf("~%d tokens (local estimate)\n", n)
		return nil
	}

	if opts.Key == "" {
		return errors.New("no API key: pass --key or set GENERATIVE_API_KEY")
	}

	svcOpts := []generative.RESTOption{}
	if opts.BaseURL != "" {
		svcOpts = append(svcOpts, generative.WithBaseURL(opts.BaseURL))
	}
	if opts.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		svcOpts = append(svcOpts, generative.WithLogger(logger))
	}

	model := generative.NewGenerativeModel(generative.NewRESTService(opts.Key, svcOpts...), opts.Model)
	model.Options = &generative.RequestOptions{
		Timeout:    opts.Timeout,
		MaxRetries: opts.Retries,
	}

	if opts.Count {
		count, err := model.CountTokens(ctx, parts...)
		if err != nil {
			return err
		}
		fmt.Printf("%d tokens\n", count.TotalTokens)
		return nil
	}

	if opts.Stream {
		for resp, err := range model.GenerateContentStream(ctx, parts...) {
			if err != nil {
				return err
			}
			if text, terr := resp.Text(); terr == nil {
				fmt.Print(text)
			}
		}
		fmt.Println()
		return nil
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return err
	}
	text, err := resp.Text()
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
