package webservices

import (
	"html/template"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"regexp"

	"github.com/go-chi/chi"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/styling/stylesheet"
)

const maxStyleSheetSize = 4 << 20

var styleIDRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

type AdminService struct {
	logger            *logpkg.Logger
	fs                gofs.Fs
	stylesDir         string
	styleSet          *styling.StyleSet
	registry          *LegendRegistry
	routerURLBasePath string
	chi.Router
}

func NewAdminService(
	logger *logpkg.Logger,
	fs gofs.Fs,
	stylesDir string,
	styleSet *styling.StyleSet,
	registry *LegendRegistry,
	routerURLBasePath string,
) *AdminService {
	as := &AdminService{logger, fs, stylesDir, styleSet, registry, routerURLBasePath, chi.NewRouter()}

	as.Router.Get("/", as.handleGet)
	as.Router.Post("/styleSheet", as.handlePostStyleSheet)

	return as
}

func styleFileExtension(data []byte) string {
	if stylesheet.IsMapboxGLStyle(data) {
		return ".json"
	}
	return ".mss"
}

// handlePostStyleSheet stores an uploaded style sheet in the styles directory and makes it available to maps and legends.
func (as *AdminService) handlePostStyleSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStyleSheetSize)

	multipartFile, _, err := r.FormFile("styleSheet")
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}
	defer multipartFile.Close()

	styleID := r.FormValue("styleId")
	if !styleIDRegexp.MatchString(styleID) || styleID == styling.BUILTIN_STYLEID {
		errorsx.HTTPError(w, as.logger, errorsx.Errorf("invalid style ID: %q", styleID), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(multipartFile)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	sheet := &styling.Sheet{ID: styleID, Data: data}
	parseErr := stylesheet.ParseSheet(sheet)
	if parseErr != nil {
		errorsx.HTTPError(w, as.logger, parseErr, http.StatusUnprocessableEntity)
		return
	}

	err = as.fs.MkdirAll(as.stylesDir, 0700)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}

	filePath := filepath.Join(as.stylesDir, styleID+styleFileExtension(data))
	err = as.fs.WriteFile(filePath, data, 0600)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err, "filePath", filePath), http.StatusInternalServerError)
		return
	}

	addErr := as.styleSet.AddSheet(sheet)
	if addErr != nil {
		errorsx.HTTPError(w, as.logger, addErr, http.StatusBadRequest)
		return
	}

	as.logger.Info("added style sheet %q from %q", styleID, filePath)
	w.WriteHeader(http.StatusCreated)
}

func (as *AdminService) handleGet(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"RouterURLBasePath": as.routerURLBasePath,
		"StylesDir":         as.stylesDir,
		"DefaultStyleID":    as.styleSet.DefaultStyleID(),
		"StyleIDs":          as.styleSet.GetAllStyleIDs(),
		"LegendIDs":         as.registry.IDs(),
	}

	err := adminTmpl.Execute(w, data)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}
}

func isLocalhost(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// LocalhostOnlyMiddleware rejects requests that don't come from the computer the server is running on.
func LocalhostOnlyMiddleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !isLocalhost(r.RemoteAddr) {
			http.Error(w, "connections only allowed from the same computer the server is running on", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

var adminTmpl = template.Must(template.New("admin/index.html").Parse(adminTemplate))

const adminTemplate = `
<html>
	<head>
		<title>admin</title>
		<style type="text/css">
		div {
			margin: 10px;
			border: 1px solid grey;
			padding: 10px;
		}
		</style>
		<script>
		function submitStyleSheet(formEl) {
			const formData = new FormData(formEl);

			fetch('/{{.RouterURLBasePath}}/styleSheet', {method: 'POST', body: formData})
				.then(resp => {
					if (!resp.ok) {
						return resp.text().then(text => { throw new Error(text); });
					}
					alert('style sheet uploaded');
					window.location.reload();
				})
				.catch(e => {
					console.error(e);
					alert('failed to upload style sheet: ' + e);
				});
		}
		</script>
	</head>
	<body>
		<h1>Admin settings</h1>
		<div>
			<h2>Styles</h2>
			<p>Default style: {{.DefaultStyleID}}</p>
			{{range .StyleIDs}}
				<p>{{.}}</p>
			{{end}}
		</div>

		<div>
			<h2>Legends</h2>
			{{range .LegendIDs}}
				<p>
					<a href="/api/legends/{{.}}/bitmap.png?width=6&unit=cm">{{.}}</a>
				</p>
			{{else}}
				<p>No legends have been created yet</p>
			{{end}}
		</div>

		<div>
			<h3>
				Import a style sheet
			</h3>
			<p>Style sheets are Mapbox GL styles (.json) or CartoCSS (.mss) files</p>
			<p>They end up in <pre>{{.StylesDir}}</pre></p>
			<form action="javascript:;" method="POST" enctype="multipart/form-data" onsubmit="submitStyleSheet(this)">
				<p>
					<label>
						Style ID
						<input type="text" name="styleId" />
					</label>
				</p>
				<p>
					<label>
						Style sheet
						<input type="file" name="styleSheet" />
					</label>
				</p>
				<input type="submit" value="Go!" />
			</form>
		</div>
	</body>
</html>
`
