package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/brevo"
	"github.com/rathodv/maya/gemini"
	"github.com/rathodv/maya/goquery"
	"github.com/rathodv/maya/htmltomarkdown"
	mayahttp "github.com/rathodv/maya/http"
	"github.com/rathodv/maya/jwt"
	"github.com/rathodv/maya/readability"
	"github.com/rathodv/maya/search"
	mayaslog "github.com/rathodv/maya/slog"
	"github.com/rathodv/maya/sqlite"
	"github.com/rathodv/maya/trafilatura"
)

// Version is set by the build.
var Version = "dev"

func main() {
	ctx := context.Background()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("maya"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'maya --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Addr = envOr("MAYA_ADDR", ":8080")
	deps.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	// The parse-only commands run without a database or network wiring.
	if cmd == "remind" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MAYA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Users = sqlite.NewUserService(m.DB)
	deps.Settings = sqlite.NewSettingsService(m.DB)
	deps.Reminders = sqlite.NewReminderService(m.DB)
	deps.Cache = sqlite.NewCache(m.DB)
	deps.OTP = &maya.CacheOTPService{Cache: deps.Cache}
	deps.Tokens = jwt.NewTokenService(os.Getenv("MAYA_SECRET"))

	if apiKey := os.Getenv("BREVO_API_KEY"); apiKey != "" {
		deps.Mailer = mayaslog.NewLoggingMailer(brevo.NewMailer(apiKey), slog.Default())
		deps.MailEnabled = true
	}

	deps.Searcher, deps.SearchProviders = buildSearcher(deps.Cache)
	deps.AIEnabled = os.Getenv("GEMINI_API_KEY") != ""

	if cmd == "serve" {
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Responder = gemini.NewResponder(client)
			deps.Intents = gemini.NewIntentExtractor(client)
		} else {
			fmt.Fprintln(stderr, "GEMINI_API_KEY not set; chat runs in offline mode")
			deps.Intents = gemini.NewIntentExtractor(nil)
		}
	}

	return kongCtx.Run(deps)
}

// buildSearcher assembles the search pipeline from whichever providers
// the environment configures. A nil searcher means no provider keys are
// set.
func buildSearcher(cache maya.Cache) (maya.Searcher, []string) {
	var providers []maya.SearchProvider
	if key := os.Getenv("SERPAPI_KEY"); key != "" {
		providers = append(providers, search.NewSerpAPIProvider(key))
	}
	if key, cx := os.Getenv("GOOGLE_API_KEY"), os.Getenv("GOOGLE_SEARCH_CX_ID"); key != "" && cx != "" {
		providers = append(providers, search.NewGoogleProvider(key, cx))
	}
	if len(providers) == 0 {
		return nil, nil
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}

	scraper := &search.Scraper{
		Fetcher: mayahttp.NewFetcher(mayahttp.WithTimeout(maya.ScrapeTimeout)),
		Extractors: []maya.Extractor{
			goquery.NewExtractor(),
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		},
		Converter:   htmltomarkdown.NewConverter(),
		RateLimiter: search.NewDomainLimiter(1.0),
	}
	searcher := &search.Searcher{
		Providers: providers,
		Cache:     cache,
		Scraper:   scraper,
	}
	return mayaslog.NewLoggingSearcher(searcher, slog.Default()), names
}

func defaultDBPath() string {
	if path := os.Getenv("MAYA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "maya.db"
	}
	dir := filepath.Join(home, ".maya")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "maya.db")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
