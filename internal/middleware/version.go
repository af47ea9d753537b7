package middleware

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderAPIVersion is read from requests and echoed on responses.
const HeaderAPIVersion = "X-API-Version"

type VersionStatus string

const (
	VersionActive     VersionStatus = "active"
	VersionDeprecated VersionStatus = "deprecated"
	VersionSunset     VersionStatus = "sunset"
)

// APIVersion describes one version clients may ask for.
type APIVersion struct {
	Version    string        `json:"version"`
	Status     VersionStatus `json:"status"`
	SunsetDate *time.Time    `json:"sunsetDate,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// VersionMiddleware routes the X-API-Version header. A deprecated version
// turns into a sunset one once its sunset date has passed.
type VersionMiddleware struct {
	mu             sync.RWMutex
	versions       map[string]APIVersion
	defaultVersion string
	now            func() time.Time
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		versions: map[string]APIVersion{
			"v1": {Version: "v1", Status: VersionActive, Message: "Current stable API version"},
		},
		defaultVersion: "v1",
		now:            time.Now,
	}
}

// AddVersion registers or replaces a version.
func (vm *VersionMiddleware) AddVersion(version string, status VersionStatus, message string, sunsetDate *time.Time) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.versions[version] = APIVersion{
		Version:    version,
		Status:     status,
		SunsetDate: sunsetDate,
		Message:    message,
	}
}

// resolve returns the effective state of version.
func (vm *VersionMiddleware) resolve(version string) (APIVersion, bool) {
	vm.mu.RLock()
	v, ok := vm.versions[version]
	vm.mu.RUnlock()
	if !ok {
		return APIVersion{}, false
	}
	if v.Status == VersionDeprecated && v.SunsetDate != nil && !vm.now().Before(*v.SunsetDate) {
		v.Status = VersionSunset
	}
	return v, true
}

// served lists every version that still answers requests, sorted by name.
func (vm *VersionMiddleware) served() []APIVersion {
	vm.mu.RLock()
	names := make([]string, 0, len(vm.versions))
	for name := range vm.versions {
		names = append(names, name)
	}
	vm.mu.RUnlock()
	sort.Strings(names)

	out := make([]APIVersion, 0, len(names))
	for _, name := range names {
		if v, ok := vm.resolve(name); ok && v.Status != VersionSunset {
			out = append(out, v)
		}
	}
	return out
}

// VersionHeader resolves the requested version (default v1), rejects unknown
// or sunset versions with 404 and stamps the response headers.
func (vm *VersionMiddleware) VersionHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requested := strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderAPIVersion)))
			if requested == "" {
				requested = vm.defaultVersion
			}

			v, ok := vm.resolve(requested)
			if !ok || v.Status == VersionSunset {
				names := make([]string, 0)
				for _, s := range vm.served() {
					names = append(names, s.Version)
				}
				return c.JSON(http.StatusNotFound, map[string]string{
					"message":           "Unsupported API version",
					"supportedVersions": strings.Join(names, ", "),
				})
			}

			h := c.Response().Header()
			h.Set(HeaderAPIVersion, v.Version)
			if v.Status == VersionDeprecated {
				h.Set("X-API-Deprecated", "true")
				if v.SunsetDate != nil {
					h.Set("X-API-Sunset", v.SunsetDate.Format(time.RFC3339))
					h.Set("Warning", `299 smartrental "This API version is deprecated and will be removed on `+
						v.SunsetDate.Format("2006-01-02")+`"`)
				}
			}
			c.Set("api_version", v.Version)

			return next(c)
		}
	}
}

// ListVersions answers GET /api/versions.
func (vm *VersionMiddleware) ListVersions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"default":  vm.defaultVersion,
		"versions": vm.served(),
	})
}
