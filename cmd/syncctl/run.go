package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/forgesync/internal/config"
	"github.com/danmuck/forgesync/internal/delta"
	"github.com/danmuck/forgesync/internal/logging"
	"github.com/danmuck/forgesync/internal/observability"
	"github.com/danmuck/forgesync/internal/protocol"
	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/danmuck/forgesync/internal/view"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const usage = `usage: syncctl <command> [flags]

commands:
  encode   encode a fixture as a full sync message
  decode   decode a sync message and print the resulting state
`

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "encode":
		err = runEncode(args[1:], stdout, stderr)
	case "decode":
		err = runDecode(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "syncctl %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

// commonFlags are shared by encode and decode.
type commonFlags struct {
	configPath string
	backend    string
	compress   bool
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", "", "sync config TOML (defaults apply when empty)")
	fs.StringVarP(&c.backend, "backend", "b", "", "stream backend override: tlv|cbor")
	fs.BoolVar(&c.compress, "compress", false, "zstd-compress the payload")
	fs.StringVar(&c.logLevel, "log-level", "", "log level override")
}

func (c *commonFlags) load(fs *pflag.FlagSet) (config.SyncConfig, error) {
	cfg := config.DefaultConfig()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return config.SyncConfig{}, err
		}
		cfg = loaded
	}
	if fs.Changed("backend") {
		b, err := protocol.ParseBackend(c.backend)
		if err != nil {
			return config.SyncConfig{}, err
		}
		cfg.Backend = b
	}
	if fs.Changed("compress") {
		cfg.Compression = c.compress
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return config.SyncConfig{}, err
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)
	var common commonFlags
	common.register(fs)
	fixturePath := fs.StringP("fixture", "f", "", "fixture TOML (required)")
	output := fs.StringP("output", "o", "", "output file (required)")
	messageID := fs.Uint64("id", 1, "message id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fixturePath == "" || *output == "" {
		return errors.New("--fixture and --output are required")
	}
	cfg, err := common.load(fs)
	if err != nil {
		return err
	}
	fixture, err := config.LoadFixture(*fixturePath)
	if err != nil {
		return err
	}
	tracker, err := config.Build(fixture)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = protocol.EncodeMessage(&buf, *messageID, protocol.MessageFull, cfg.ProtocolOptions(), func(s trackable.Serializer) error {
		return delta.Encode(s, tracker.Objects(), true)
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o600); err != nil {
		return err
	}
	log.Info().Str("output", *output).Str("backend", string(cfg.Backend)).Int("bytes", buf.Len()).Msg("syncctl: encoded")
	fmt.Fprintf(stdout, "encoded %d objects (%d bytes, %s) to %s\n", len(tracker.Objects()), buf.Len(), cfg.Backend, *output)
	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	var common commonFlags
	common.register(fs)
	input := fs.StringP("input", "i", "", "message file (required)")
	metrics := fs.Bool("metrics", false, "dump sync metrics after decoding")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("--input is required")
	}
	cfg, err := common.load(fs)
	if err != nil {
		return err
	}
	f, err := os.Open(*input)
	if err != nil {
		return err
	}
	defer f.Close()

	tracker := view.NewTracker()
	var res delta.Result
	env, err := protocol.DecodeMessage(f, cfg.Limits(), func(env protocol.Envelope, d trackable.Deserializer) error {
		var err error
		res, err = delta.Decode(d, tracker, env.MessageType == protocol.MessageFull)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "message %d (%s, %s, %d bytes)\n", env.MessageID, env.MessageType, env.Backend, env.PayloadLen)
	printTracker(stdout, tracker)
	for _, ref := range res.Unresolved {
		fmt.Fprintf(stdout, "unresolved %s\n", ref)
	}
	if *metrics {
		return observability.WriteMetrics(stdout)
	}
	return nil
}

func printTracker(w io.Writer, t *view.Tracker) {
	g := t.Game()
	fmt.Fprintf(w, "game turn=%d phase=%s active=%s\n", g.Turn(), g.Phase(), g.PlayerTurn())
	if item := g.TopOfStack(); item != nil {
		fmt.Fprintf(w, "stack %q source=%s target=%s\n", item.Text, item.Source, item.Target)
	}
	for _, p := range t.Players() {
		fmt.Fprintf(w, "player %d %s life=%d hand=%d battlefield=%d\n",
			p.ID(), p.Name(), p.Life(), p.Hand().Len(), p.Battlefield().Len())
	}
	for _, c := range t.Cards() {
		fmt.Fprintf(w, "card %d %s zone=%s cost=%s colors=%s\n",
			c.ID(), c.Name(), c.Zone(), c.ManaCost(), c.Colors())
	}
}
