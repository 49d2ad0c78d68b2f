package registry

// CoreComponents are always part of a generated project. They are never
// requested explicitly and never expanded by Resolve; the scaffolder prepends
// them to every selection.
var CoreComponents = []string{"backend", "frontend"}

// builtinSpecs defines the shipped component set. Kept as data so tests and
// registry overlays can replace it wholesale.
func builtinSpecs() []ComponentSpec {
	return []ComponentSpec{
		{
			Name:        "backend",
			Category:    CategoryCore,
			Description: "FastAPI web backend with health endpoints",
			DockerServices: []string{
				"backend",
			},
			PyprojectDeps: []string{
				"fastapi",
				"uvicorn[standard]",
				"structlog",
				"pydantic-settings",
				"typer",
			},
			TemplateFiles: []string{
				"pyproject.toml",
				"README.md",
				"Dockerfile",
				"docker-compose.yml",
				".env.example",
				"app/components/backend/main.py",
				"app/core/config.py",
				"tests/test_health.py",
			},
		},
		{
			Name:        "frontend",
			Category:    CategoryCore,
			Description: "Flet frontend served by the backend process",
			PyprojectDeps: []string{
				"flet[all]",
			},
			TemplateFiles: []string{
				"app/components/frontend/main.py",
			},
		},
		{
			Name:        "redis",
			Category:    CategoryInfrastructure,
			Description: "Redis-based async caching",
			DockerServices: []string{
				"redis",
			},
			PyprojectDeps: []string{
				"redis[hiredis]",
			},
			TemplateFiles: []string{
				"app/services/cache_service.py",
				"tests/test_cache.py",
			},
		},
		{
			Name:        "worker",
			Category:    CategoryInfrastructure,
			Description: "Background worker pool backed by Redis queues",
			Requires:    []string{"redis"},
			Recommends:  []string{"scheduler"},
			DockerServices: []string{
				"worker",
				"redis",
			},
			PyprojectDeps: []string{
				"arq",
				"redis[hiredis]",
			},
			TemplateFiles: []string{
				"app/components/worker/main.py",
				"tests/components/test_worker.py",
			},
		},
		{
			Name:        "scheduler",
			Category:    CategoryInfrastructure,
			Description: "APScheduler-based async task scheduling",
			DockerServices: []string{
				"scheduler",
			},
			PyprojectDeps: []string{
				"apscheduler",
			},
			TemplateFiles: []string{
				"app/components/scheduler/main.py",
				"tests/components/test_scheduler.py",
			},
		},
	}
}
