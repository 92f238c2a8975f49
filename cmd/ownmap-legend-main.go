package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/open"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/jamesrr39/ownmap-legend/dataset"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/legendconfig"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/stylesheet"
	"github.com/jamesrr39/ownmap-legend/units"
	"github.com/jamesrr39/ownmap-legend/webservices"
	"github.com/pkg/profile"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	MAX_SERVER_RUNNING_ATTEMPTS = 50
	DEFAULT_PORT                = 9000
	DEFAULT_DPI                 = units.DefaultDPI
	DEFAULT_SCALE_DENOMINATOR   = 25000
	DEFAULT_DATASET_NAME        = "OpenStreetMap"
	DEFAULT_STYLES_DIR          = "~/.local/share/github.com/jamesrr39/ownmap-legend/styles"

	adminPath = "admin"
)

var logger *logpkg.Logger

func main() {
	if len(os.Args) == 1 {
		logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelInfo)
		// start in desktop "double-click" visual mode
		err := setupDesktopMode()
		if err != nil {
			log.Fatalf("failed to start server: %q\n%s\n", err.Error(), err.Stack())
		}
		return
	}

	verbose := kingpin.Flag("v", "verbose logging").Bool()
	kingpin.CommandLine.PreAction(func(ctx *kingpin.ParseContext) error {
		logLevel := logpkg.LogLevelInfo
		if *verbose {
			logLevel = logpkg.LogLevelDebug
		}
		logger = logpkg.NewLogger(os.Stderr, logLevel)
		return nil
	})

	setupServe()
	setupRender()

	kingpin.Parse()
}

type mapOptions struct {
	dataSetName      string
	scaleDenominator float64
	dpi              float64
	imperial         bool
	pbfPath          string
	zoom             float64
}

// newFramework creates the map. With a PBF file, the data set is scanned for its name and position.
func newFramework(fs gofs.Fs, options mapOptions) (*framework.Framework, *dataset.Info, errorsx.Error) {
	var dataSetInfo *dataset.Info
	if options.pbfPath != "" {
		var err errorsx.Error
		dataSetInfo, err = dataset.LoadInfo(logger, fs, options.pbfPath)
		if err != nil {
			return nil, nil, errorsx.Wrap(err)
		}
	}

	dataSetName := options.dataSetName
	if dataSetName == "" {
		dataSetName = DEFAULT_DATASET_NAME
		if dataSetInfo != nil {
			dataSetName = dataSetInfo.Name
		}
	}

	scaleDenominator := options.scaleDenominator
	if options.zoom >= 0 {
		var latitude float64
		if dataSetInfo != nil {
			latitude = dataSetInfo.CentreLatitude()
		}
		scaleDenominator = webservices.ScaleDenominatorForZoom(latitude, options.zoom, options.dpi)
	}

	hostMap := framework.NewMap(dataSetName, scaleDenominator)
	if options.imperial {
		hostMap.SetUnitSystem(units.Imperial)
	}

	return framework.New(logger, options.dpi, hostMap), dataSetInfo, nil
}

func loadStyles(fs gofs.Fs, stylesDir, defaultStyleID string) (string, *styling.StyleSet, errorsx.Error) {
	expandedDir, err := userextra.ExpandUser(stylesDir)
	if err != nil {
		return "", nil, errorsx.Wrap(err)
	}

	styleSet, err := stylesheet.LoadStyleSet(logger, fs, expandedDir, defaultStyleID)
	if err != nil {
		return "", nil, errorsx.Wrap(err)
	}

	return expandedDir, styleSet, nil
}

type serverOptions struct {
	stylesDir     string
	traceDir      string
	shouldProfile bool
}

func setupDesktopMode() errorsx.Error {
	fs := gofs.NewOsFs()

	stylesDir, styleSet, err := loadStyles(fs, DEFAULT_STYLES_DIR, styling.BUILTIN_STYLEID)
	if err != nil {
		return errorsx.Wrap(err)
	}

	fw, _, err := newFramework(fs, mapOptions{DEFAULT_DATASET_NAME, DEFAULT_SCALE_DENOMINATOR, DEFAULT_DPI, false, "", -1})
	if err != nil {
		return errorsx.Wrap(err)
	}
	defer fw.Close()

	router, err := createServer(fw, styleSet, fs, nil, serverOptions{stylesDir: stylesDir})
	if err != nil {
		return errorsx.Wrap(err)
	}

	server := httpextra.NewServerWithTimeouts()
	server.Addr = fmt.Sprintf("localhost:%d", DEFAULT_PORT)
	server.Handler = router

	errChan := make(chan errorsx.Error, 2)

	go func() {
		err := server.ListenAndServe()
		if err != nil {
			errChan <- errorsx.Wrap(err)
		}
	}()

	go func() {
		// test server is running
		client := http.Client{
			Timeout: time.Second * 10,
		}
		for i := 0; i < MAX_SERVER_RUNNING_ATTEMPTS; i++ {
			resp, err := client.Get(fmt.Sprintf("http://%s/api/info", server.Addr))
			if err != nil {
				// retry after wait
				time.Sleep(time.Millisecond * 500)
				continue
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				errChan <- errorsx.Errorf("expected response code %d from /api/info call, but got %d", http.StatusOK, resp.StatusCode)
				return
			}

			errChan <- nil
			return
		}

		errChan <- errorsx.Errorf("server did not start after %d attempts", MAX_SERVER_RUNNING_ATTEMPTS)
	}()

	err = <-errChan
	if err != nil {
		return errorsx.Wrap(err)
	}

	openErr := open.OpenURL(fmt.Sprintf("http://%s/%s/", server.Addr, adminPath))
	if openErr != nil {
		return errorsx.Wrap(openErr)
	}

	// runs until the server stops
	return <-errChan
}

var addrHelp = fmt.Sprintf(
	`address to serve on. Ex: ':%d' listen on port %d to traffic from anywhere. 'localhost:%d' listen on port %d to traffic from localhost`,
	DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT,
)

func addMapFlags(cmd *kingpin.CmdClause) *mapOptions {
	options := new(mapOptions)
	cmd.Flag("dataset", fmt.Sprintf("name of the map data set, shown in legend titles. Defaults to the PBF file name, or %q", DEFAULT_DATASET_NAME)).StringVar(&options.dataSetName)
	cmd.Flag("pbf", "OpenStreetMap extract (.pbf file) the map shows").StringVar(&options.pbfPath)
	cmd.Flag("scale", "map scale denominator, e.g. 25000 for 1:25,000").Default(fmt.Sprintf("%d", DEFAULT_SCALE_DENOMINATOR)).Float64Var(&options.scaleDenominator)
	cmd.Flag("zoom", "set the scale from a web map zoom level instead, at the middle of the PBF file's bounds").Default("-1").Float64Var(&options.zoom)
	cmd.Flag("dpi", "dots per inch of the display").Default(fmt.Sprintf("%v", DEFAULT_DPI)).Float64Var(&options.dpi)
	cmd.Flag("imperial", "show distances in feet and miles").BoolVar(&options.imperial)
	return options
}

func setupServe() {
	cmd := kingpin.Command("serve", "serve webserver")
	addr := cmd.Flag("addr", addrHelp).Default(fmt.Sprintf(":%d", DEFAULT_PORT)).String()
	mapOpts := addMapFlags(cmd)
	stylesDir := cmd.Flag("styles-dir", "folder containing style sheets (Mapbox GL .json or CartoCSS .mss files)").Default(DEFAULT_STYLES_DIR).String()
	defaultStyleID := cmd.Flag("default-style-id", "style the map is drawn with").Default(styling.BUILTIN_STYLEID).String()
	traceDir := cmd.Flag("trace-dir", "folder to write request traces to. Defaults to a temporary folder").String()
	shouldProfile := cmd.Flag("profile", "profile the request performance").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			fs := gofs.NewOsFs()

			expandedStylesDir, styleSet, err := loadStyles(fs, *stylesDir, *defaultStyleID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			fw, dataSetInfo, err := newFramework(fs, *mapOpts)
			if err != nil {
				return errorsx.Wrap(err)
			}
			defer fw.Close()

			if *defaultStyleID != styling.BUILTIN_STYLEID {
				fw.Map().SetMainStyleSheet(styleSet.GetDefaultSheet())
			}

			router, err := createServer(fw, styleSet, fs, dataSetInfo, serverOptions{expandedStylesDir, *traceDir, *shouldProfile})
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = *addr
			server.Handler = router

			logger.Info("about to start serving on %q", *addr)

			listenErr := server.ListenAndServe()
			if listenErr != nil {
				return errorsx.Wrap(listenErr)
			}
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupRender() {
	cmd := kingpin.Command("render", "render a legend definition to a PNG file")
	configPath := cmd.Arg("config", "legend definition (YAML) file").Required().String()
	mapOpts := addMapFlags(cmd)
	width := cmd.Flag("width", "width of the legend").Default("6").Float64()
	unit := cmd.Flag("unit", "unit of the width: px, pt, in, mm or cm").Default(units.UnitCentimetre).String()
	outPath := cmd.Flag("out", "PNG file to write").Short('o').Default("legend.png").String()
	shouldProfile := cmd.Flag("profile", "profile the render performance").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) (err error) {
		defer func() {
			errorx, ok := err.(errorsx.Error)
			if ok {
				log.Printf("%s\n%s\n", errorx.Error(), errorx.Stack())
			}
		}()

		if *shouldProfile {
			defer profile.Start(profile.ProfilePath(filepath.Dir(*outPath)), profile.CPUProfile).Stop()
		}

		return renderToFile(gofs.NewOsFs(), *configPath, *mapOpts, *width, *unit, *outPath)
	})
}

func renderToFile(fs gofs.Fs, configPath string, mapOpts mapOptions, width float64, unit, outPath string) errorsx.Error {
	startTime := time.Now()

	definition, err := legendconfig.Load(fs, configPath)
	if err != nil {
		return errorsx.Wrap(err, "config", configPath)
	}

	fw, _, err := newFramework(fs, mapOpts)
	if err != nil {
		return errorsx.Wrap(err)
	}
	defer runtime.KeepAlive(fw)

	l := definition.NewLegend(fw)
	img, err := l.CreateBitmap(width, unit, image.Point{}, 0)
	if err != nil {
		return errorsx.Wrap(err)
	}

	file, createErr := fs.Create(outPath)
	if createErr != nil {
		return errorsx.Wrap(createErr, "out", outPath)
	}
	defer file.Close()

	encodeErr := png.Encode(file, img)
	if encodeErr != nil {
		return errorsx.Wrap(encodeErr, "out", outPath)
	}

	logger.Info("rendered %dx%d legend to %q in %s", img.Bounds().Dx(), img.Bounds().Dy(), outPath, time.Since(startTime))
	return nil
}

func newTraceWriter(traceDir string) (io.Writer, errorsx.Error) {
	var err error
	if traceDir == "" {
		traceDir, err = os.MkdirTemp("", "ownmap-legend-trace")
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
	}

	traceFilePath := filepath.Join(traceDir, fmt.Sprintf("trace_%s.pbf", time.Now().Format("2006-01-02__03_04_05")))
	logger.Info("tracing at %q", traceFilePath)

	traceFile, err := os.Create(traceFilePath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return traceFile, nil
}

func createServer(fw *framework.Framework, styleSet *styling.StyleSet, fs gofs.Fs, dataSetInfo *dataset.Info, options serverOptions) (chi.Router, errorsx.Error) {
	traceWriter, err := newTraceWriter(options.traceDir)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	registry := webservices.NewLegendRegistry(fw)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)
	router.Use(tracing.Middleware(tracing.NewTracer(traceWriter)))
	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, fw, styleSet, registry, dataSetInfo))
		r.Mount("/map", webservices.NewMapService(logger, fw, styleSet))
		r.Mount("/legends", webservices.NewLegendService(logger, fw, registry, fs, options.stylesDir, options.shouldProfile))
		r.Mount("/navigation", webservices.NewNavigationService(logger, fw))
	})
	router.Route(fmt.Sprintf("/%s/", adminPath), func(r chi.Router) {
		r.Use(webservices.LocalhostOnlyMiddleware)
		r.Mount("/", webservices.NewAdminService(logger, fs, options.stylesDir, styleSet, registry, adminPath))
	})

	return router, nil
}
