package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/learnhub/enrolls/app/store"
	"github.com/learnhub/enrolls/app/store/persistence"
	"github.com/learnhub/enrolls/app/web"
)

var opts struct {
	DBPath string `long:"db" env:"ENROLLS_DB" default:"enrolls.db" description:"sqlite database file, :memory: for ephemeral store"`
	IDMode string `long:"id-mode" env:"ENROLLS_ID_MODE" choice:"timestamp" choice:"uuid" default:"timestamp" description:"record id format"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging"`
		Debug           bool   `long:"debug" env:"DEBUG" description:"debug mode"`
		Filename        string `long:"filename" env:"FILENAME" description:"file to write logs to, stdout if empty"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"maximum size in megabytes before rotation"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"maximum number of old log files to retain"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"30" description:"maximum days to retain old log files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"ENROLLS_LOG"`

	Serve  serveCommand  `command:"serve" description:"run JSON API server"`
	Dump   dumpCommand   `command:"dump" description:"print courses, enrollments and students as yaml"`
	Schema schemaCommand `command:"schema" description:"print JSON schema of the stored data"`
}

type serveCommand struct {
	Address   string  `long:"address" env:"ENROLLS_WEB_ADDRESS" default:":8080" description:"web server listen address"`
	WriteRate float64 `long:"write-rate" env:"ENROLLS_WEB_WRITE_RATE" default:"10" description:"max mutating requests per second per client"`
}

type dumpCommand struct{}

type schemaCommand struct{}

var revision = "unknown"

func main() {
	p := flags.NewParser(&opts, flags.Default)
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLogs()
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// Execute runs the web server until SIGTERM
func (c *serveCommand) Execute(_ []string) error {
	fmt.Printf("enrolls %s\n", revision)
	kv, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStorage(kv)
	st.Subscribe(logChange)

	srv, err := web.New(web.Config{Store: st, Version: revision, WriteRate: c.WriteRate})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals(cancel) // handle SIGQUIT and SIGTERM
	return srv.Run(ctx, c.Address)
}

// Execute prints the store content as yaml
func (c *dumpCommand) Execute(_ []string) error {
	kv, st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStorage(kv)
	return writeDump(os.Stdout, st)
}

// Execute prints JSON schema of the persisted layout
func (c *schemaCommand) Execute(_ []string) error {
	data, err := json.MarshalIndent(store.GenerateSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}

func writeDump(w io.Writer, st *store.Store) error {
	dump := struct {
		Courses     []store.Course     `yaml:"courses"`
		Enrollments []store.Enrollment `yaml:"enrollments"`
		Students    []store.Student    `yaml:"students"`
	}{Courses: st.Courses(), Enrollments: st.Enrollments(), Students: st.Students()}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return enc.Close()
}

// openStore opens sqlite storage at opts.DBPath and loads the store from it
func openStore() (*persistence.SQLiteStore, *store.Store, error) {
	kv, err := persistence.NewSQLiteStore(opts.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open storage %s: %w", opts.DBPath, err)
	}
	st, err := store.New(store.Opts{KV: kv, IDs: makeIDGenerator()})
	if err != nil {
		closeStorage(kv)
		return nil, nil, err
	}
	log.Printf("[INFO] store %s loaded, %d enrollments, %d students", opts.DBPath,
		len(st.Enrollments()), len(st.Students()))
	return kv, st, nil
}

// closeStorage closes kv, logging the error if any
func closeStorage(kv io.Closer) {
	if err := kv.Close(); err != nil {
		log.Printf("[WARN] failed to close storage: %v", err)
	}
}

func makeIDGenerator() store.IDGenerator {
	if opts.IDMode == "uuid" {
		return store.UUIDGenerator{}
	}
	return &store.TimestampGenerator{}
}

func logChange(ch store.Change) {
	log.Printf("[DEBUG] %s changed, id %s", ch.Collection, ch.ID)
}

// setupLogs configures lgr and returns the log destination
func setupLogs() io.Writer {
	if !opts.Log.Enabled {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
		return io.Discard
	}

	var out io.Writer = os.Stdout
	if opts.Log.Filename != "" {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	if opts.Log.Debug {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
