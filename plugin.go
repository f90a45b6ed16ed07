package nulua

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reglet-dev/nu-plugin-lua/application/config"
	"github.com/reglet-dev/nu-plugin-lua/application/custom"
	"github.com/reglet-dev/nu-plugin-lua/application/lua"
	"github.com/reglet-dev/nu-plugin-lua/application/schema"
	"github.com/reglet-dev/nu-plugin-lua/command"
	"github.com/reglet-dev/nu-plugin-lua/domain/entities"
	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
	"github.com/reglet-dev/nu-plugin-lua/domain/ports"
	"github.com/reglet-dev/nu-plugin-lua/infrastructure/golua"
	"github.com/reglet-dev/nu-plugin-lua/log"
	"github.com/reglet-dev/nu-plugin-lua/session"
	"github.com/reglet-dev/nu-plugin-lua/wireformat"
)

// Option configures a Plugin.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	factory ports.EngineFactory
	output  io.Writer
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput redirects what lua code prints. The default is stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithEngineFactory replaces the go-lua engine, mainly for tests.
func WithEngineFactory(f ports.EngineFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// Plugin is the lua plugin: its commands, its live sessions and the hooks
// the host protocol layer calls.
type Plugin struct {
	logger   *slog.Logger
	sessions *session.Registry
	commands *command.Registry
	manifest entities.Manifest
	cfg      config.Config
}

// New builds a plugin from a validated configuration. Settings from the
// host's plugin config record are applied beforehand with config.Merge.
func New(cfg config.Config, opts ...Option) (*Plugin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, &errors.ConfigError{Field: "LogLevel", Err: err}
		}
		o.logger = log.NewLogger(os.Stderr,
			log.WithLevel(level),
			log.WithFormat(log.Format(cfg.LogFormat)),
			log.WithPlugin(Name, Version),
		)
	}
	if o.factory == nil {
		o.factory = golua.NewFactory(
			golua.WithLibraries(cfg.OpenLibraries),
			golua.WithChunkName(cfg.ChunkName),
			golua.WithMaxOutputSize(cfg.MaxOutputSize),
			golua.WithOutput(o.output),
		)
	}

	sessions := session.NewRegistry(o.factory, session.WithLogger(o.logger))
	commands, err := command.NewRegistry(
		command.WithMiddleware(
			command.LoggingMiddleware(o.logger),
			command.PanicRecoveryMiddleware(),
		),
		command.WithBundle(lua.Bundle(sessions, cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	configSchema, err := schema.GenerateSchema(config.Config{})
	if err != nil {
		return nil, err
	}

	return &Plugin{
		cfg:      cfg,
		logger:   o.logger,
		sessions: sessions,
		commands: commands,
		manifest: entities.Manifest{
			Name:         Name,
			Version:      Version,
			Description:  Description,
			ConfigSchema: configSchema,
			Commands:     commands.Signatures(),
		},
	}, nil
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return Name
}

// Version returns the plugin version.
func (p *Plugin) Version() string {
	return Version
}

// Signatures returns the signatures of all commands, sorted by name.
func (p *Plugin) Signatures() []entities.Signature {
	return p.commands.Signatures()
}

// Manifest returns the complete plugin manifest.
func (p *Plugin) Manifest() entities.Manifest {
	m := p.manifest
	m.Commands = p.commands.Signatures()
	return m
}

// Config returns the configuration the plugin was built with.
func (p *Plugin) Config() config.Config {
	return p.cfg
}

// Sessions exposes the live sessions to embedding hosts.
func (p *Plugin) Sessions() *session.Registry {
	return p.sessions
}

// Run invokes the named command.
func (p *Plugin) Run(ctx context.Context, host ports.Host, name string, call *entities.Call) (entities.Value, error) {
	return p.commands.Invoke(ctx, name, host, call)
}

// CustomValueDropped is called when the host drops the last copy of a custom
// value this plugin created. Values that do not hold a session are ignored.
func (p *Plugin) CustomValueDropped(ctx context.Context, v entities.CustomValue) error {
	pv, ok := v.(*custom.PluginValue)
	if !ok {
		p.logger.WarnContext(ctx, "ignoring drop of foreign custom value", "type", typeName(v))
		return nil
	}
	h, err := pv.AsLua(entities.UnknownSpan())
	if err != nil {
		return nil
	}
	p.sessions.Destroy(h)
	return nil
}

// CustomValueDroppedWire decodes the host's token and forwards to
// CustomValueDropped. Tokens of other custom value types are ignored; a
// corrupt Lua token is an error.
func (p *Plugin) CustomValueDroppedWire(ctx context.Context, w wireformat.CustomValueWire) error {
	if w.Name != custom.TypeName {
		p.logger.WarnContext(ctx, "ignoring drop of foreign custom value", "type", w.Name)
		return nil
	}
	pv, err := custom.Decode(w)
	if err != nil {
		return err
	}
	return p.CustomValueDropped(ctx, pv)
}

// EncodeCustom turns a custom value returned by a command into the token the
// host stores.
func (p *Plugin) EncodeCustom(v entities.Value) (wireformat.CustomValueWire, error) {
	pv, ok := custom.FromValue(v)
	if !ok {
		return wireformat.CustomValueWire{}, &errors.BugError{Message: fmt.Sprintf("cannot encode %s as a custom value", v.TypeName())}
	}
	return custom.Encode(pv, v.Span())
}

// DecodeCustom rebuilds a positional argument from a token the host passed
// back.
func (p *Plugin) DecodeCustom(w wireformat.CustomValueWire) (entities.Value, error) {
	pv, err := custom.Decode(w)
	if err != nil {
		return entities.Value{}, err
	}
	return entities.NewCustom(pv, wireformat.SpanFromWire(w.Span)), nil
}

// LabeledError converts a command error into the shape the host renders.
func LabeledError(err error) *wireformat.LabeledErrorWire {
	return wireformat.LabeledErrorFromDetail(errors.ToErrorDetail(err))
}

func typeName(v entities.CustomValue) string {
	if v == nil {
		return "<nil>"
	}
	return v.TypeName()
}
