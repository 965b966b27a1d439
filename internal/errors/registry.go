package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (KBC001-KBC009)
	// ============================================

	"KBC001": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Detail:     "One or more configuration values are out of range.",
		Suggestion: "Check kbc.json and any KBC_ environment variables.",
	},
	"KBC002": {
		Category:   CategoryConfig,
		Message:    "Configuration file unreadable",
		Detail:     "The configuration file exists but could not be parsed.",
		Suggestion: "Validate the JSON syntax of kbc.json.",
	},

	// ============================================
	// Content Errors (KBC010-KBC019)
	// ============================================

	"KBC010": {
		Category:   CategoryContent,
		Message:    "Invalid content",
		Detail:     "The content file parsed but failed validation.",
		Suggestion: "Every nav anchor needs a matching section id, and every slide and video needs a src.",
	},
	"KBC011": {
		Category:   CategoryContent,
		Message:    "Content file not readable",
		Detail:     "The content file could not be read or is not valid YAML.",
		Suggestion: "Leave content.path empty to use the built-in content.",
	},

	// ============================================
	// Server Errors (KBC020-KBC029)
	// ============================================

	"KBC020": {
		Category:   CategoryServer,
		Message:    "Server failed",
		Detail:     "The HTTP server stopped with an error.",
		Suggestion: "Check that server.port is free, or set KBC_SERVER_PORT.",
	},

	// ============================================
	// Publish Errors (KBC030-KBC039)
	// ============================================

	"KBC030": {
		Category:   CategoryPublish,
		Message:    "Missing asset",
		Detail:     "The content references files that are not in the public directory.",
		Suggestion: "Add the files under public_dir or fix the paths in the content file.",
	},
	"KBC031": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		Detail:   "An object could not be uploaded after retrying.",
	},
	"KBC032": {
		Category:   CategoryPublish,
		Message:    "No AWS credentials",
		Detail:     "Publishing needs an access key and secret.",
		Suggestion: "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.",
	},
	"KBC033": {
		Category:   CategoryPublish,
		Message:    "Bucket required",
		Suggestion: "Pass --bucket or set publish.bucket in kbc.json.",
	},

	// ============================================
	// Render Errors (KBC040-KBC049)
	// ============================================

	"KBC040": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The page could not be rendered to HTML.",
	},
	"KBC041": {
		Category:   CategoryRender,
		Message:    "Output directory unwritable",
		Suggestion: "Choose a different --out directory.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
