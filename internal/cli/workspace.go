package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/infra/localinvoker"
	"github.com/aalvaropc/fnkit/internal/infra/runstore"
	"github.com/aalvaropc/fnkit/internal/infra/workspacefinder"
	"github.com/aalvaropc/fnkit/internal/infra/yamlsuite"
	"github.com/aalvaropc/fnkit/internal/ports"
)

type workspaceCtx struct {
	// root is empty when no workspace was found; built-in suites still run.
	root string
	cfg  domain.Config

	suites *yamlsuite.Loader
	store  ports.ArtifactStore
}

func (a *app) loadWorkspace() (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(a.workspace)
	if err != nil {
		return nil, err
	}

	if root == "" {
		cfg := domain.DefaultConfig()
		return &workspaceCtx{
			cfg:    cfg,
			suites: yamlsuite.NewLoader(yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir)),
		}, nil
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:   root,
		cfg:    cfg,
		suites: yamlsuite.NewLoader(yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir)),
		store:  runstore.NewJSONStore(root, cfg, runstore.WithIndex(true)),
	}, nil
}

// resolveWorkspaceRoot returns the explicit workspace, the one found upward
// from the working directory, or "" when there is none.
func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", nil
		}
		return "", err
	}
	return root, nil
}

func (ws *workspaceCtx) factory(opts ...localinvoker.Option) *localinvoker.Factory {
	return localinvoker.FromConfig(ws.cfg, opts...)
}

// collectSuites returns the built-in suites (unless disabled) followed by the
// workspace suites.
func (ws *workspaceCtx) collectSuites(noBuiltin bool) ([]domain.Suite, error) {
	var out []domain.Suite

	if ws.cfg.Builtin && !noBuiltin {
		builtin, err := yamlsuite.Builtin()
		if err != nil {
			return nil, err
		}
		out = append(out, builtin...)
	}

	if ws.root != "" {
		local, err := ws.suites.LoadAll(ws.root)
		if err != nil {
			return nil, err
		}
		out = append(out, local...)
	}

	return out, nil
}

// focus returns the flag focus when any flag is set, else the configured one.
func (ws *workspaceCtx) focus(suites, tests []string) domain.Focus {
	if len(suites) > 0 || len(tests) > 0 {
		return domain.Focus{Suites: suites, Tests: tests}
	}
	return ws.cfg.Focus
}

func (ws *workspaceCtx) rel(path string) string {
	if ws.root == "" || path == "" {
		return path
	}
	if r, err := filepath.Rel(ws.root, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return path
}
