package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ethanw/memovault/internal/auth"
	"github.com/ethanw/memovault/internal/bootstrap"
	"github.com/ethanw/memovault/internal/config"
	"github.com/ethanw/memovault/internal/jsonrpc"
	"github.com/ethanw/memovault/internal/transport/http"
	"github.com/ethanw/memovault/internal/transport/stdio"
)

// ビルド時変数（-ldflags で変更可能）
var (
	defaultTransport = "http"
	version          = "dev"
)

// Options はCLI引数オプション
type Options struct {
	Transport  string
	Host       string
	Port       int
	ConfigPath string
}

func main() {
	var err error

	// 引数なしの場合はserveをデフォルト実行
	if len(os.Args) < 2 {
		err = run([]string{})
	} else {
		switch os.Args[1] {
		case "serve":
			err = run(os.Args[1:])
		case "version", "-v", "--version":
			printVersion()
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printUsage prints the usage information
func printUsage() {
	fmt.Println(`memovault - WebDAV-backed MCP memory note server

Usage:
  memovault <command> [options]

Commands:
  serve     Start the server (http or stdio)
  version   Print version information
  help      Print this help message

Serve Options:
  -t, --transport string   Transport type: http, stdio (default: http)
  --host string            HTTP host (default: 127.0.0.1)
  -p, --port int           HTTP port (default: 8080)
  -c, --config string      Config file path

Environment:
  NUTSTORE_HOST            WebDAV endpoint URL
  NUTSTORE_EMAIL           WebDAV login
  NUTSTORE_PASSWORD        WebDAV application password
  VAULT_PATH               Remote vault directory (default: /AI_Memory)
  MEMOVAULT_TOKEN          Shared secret for /mcp authentication

Examples:
  memovault serve
  memovault serve -p 9000
  memovault serve -t stdio`)
}

// printVersion prints the version information
func printVersion() {
	fmt.Printf("memovault version %s\n", version)
}

// run は実際の処理を行う（テスト容易性のため分離）
func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	// .envがあれば読み込む（無くてもエラーにしない）
	godotenv.Load()

	logger := newLogger(opts.Transport)

	ctx, cancel := setupSignalHandler()
	defer cancel()

	return runServe(ctx, logger, opts)
}

// newLogger はルートロガーを構築する
// stdioトランスポートではstdoutがプロトコルに使われるため、ログは常にstderrへ
func newLogger(transport string) zerolog.Logger {
	var logger zerolog.Logger
	if transport == "stdio" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger.With().Timestamp().Str("service", "memovault").Logger()
}

// parseFlags は引数をパースしてOptionsを返す
func parseFlags(args []string) (*Options, error) {
	fs := flag.NewFlagSet("memovault", flag.ContinueOnError)

	opts := &Options{}
	fs.StringVar(&opts.Transport, "transport", defaultTransport, "Transport type: http, stdio")
	fs.StringVar(&opts.Transport, "t", defaultTransport, "Transport type (shorthand)")
	fs.StringVar(&opts.Host, "host", "", "HTTP host")
	fs.IntVar(&opts.Port, "port", 0, "HTTP port")
	fs.IntVar(&opts.Port, "p", 0, "HTTP port (shorthand)")
	fs.StringVar(&opts.ConfigPath, "config", "", "Config file path")
	fs.StringVar(&opts.ConfigPath, "c", "", "Config file path (shorthand)")

	// serveサブコマンド確認（引数なしまたは"serve"で始まる場合のみ許可）
	var flagArgs []string
	if len(args) == 0 {
		flagArgs = []string{}
	} else if args[0] == "serve" {
		flagArgs = args[1:]
	} else {
		return nil, fmt.Errorf("usage: memovault serve [options]")
	}

	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}

	// バリデーション
	if opts.Transport != "stdio" && opts.Transport != "http" {
		return nil, fmt.Errorf("invalid transport: %s (must be http or stdio)", opts.Transport)
	}
	if opts.Port != 0 && (opts.Port < 1 || opts.Port > 65535) {
		return nil, fmt.Errorf("invalid port: %d (must be 1-65535)", opts.Port)
	}

	return opts, nil
}

// setupSignalHandler はSIGINT/SIGTERMを受けてcontextをキャンセルする
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

// runServe はserveコマンドを実行
func runServe(ctx context.Context, logger zerolog.Logger, opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// CLIフラグは設定ファイル・環境変数より優先
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}

	services, cleanup, err := bootstrap.Initialize(logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := jsonrpc.New(services.Memory)

	switch opts.Transport {
	case "stdio":
		server := stdio.New(handler)
		return server.Run(ctx)
	case "http":
		httpConfig := http.Config{
			Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		}
		server := http.New(handler, auth.New(cfg.Auth.Token), logger, httpConfig)
		return server.Run(ctx)
	default:
		return fmt.Errorf("unknown transport: %s", opts.Transport)
	}
}
