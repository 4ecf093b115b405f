package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// getDocTool returns the MCP tool definition for get-doc.
func getDocTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get-doc",
		Description: "Retrieve Julia documentation for a symbol, module, or package. Use dotted paths like DataFrames.groupby or bare names like sort for symbols that are always available.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Dotted symbol path, e.g. DataFrames.groupby, Base.sort, or println.",
				},
				"detail_level": map[string]any{
					"type":        "string",
					"enum":        []string{"concise", "full", "all"},
					"description": "concise: type signature only. full: primary docstring (default). all: docstring plus every method signature and, for types, field names and types.",
				},
				"include_unexported": map[string]any{
					"type":        "boolean",
					"description": "Include unexported symbols. Implies module-wide documentation output.",
				},
			},
			"required": []string{"path"},
		},
	}
}

// listPackageTool returns the MCP tool definition for list-package.
func listPackageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list-package",
		Description: "List the symbols a Julia package or module exports, one '<kind> <name>' line per symbol. Successful listings also feed the search-symbols index.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Package or module path, e.g. DataFrames or Base.Iterators.",
				},
				"include_unexported": map[string]any{
					"type":        "boolean",
					"description": "Include unexported symbols in the listing.",
				},
			},
			"required": []string{"path"},
		},
	}
}

// exploreProjectTool returns the MCP tool definition for explore-project.
func exploreProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "explore-project",
		Description: "Report the name, version, and dependencies of a Julia project from its Project.toml. Works without a Julia installation by reading the manifest directly.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Directory containing Project.toml or JuliaProject.toml.",
				},
			},
			"required": []string{"path"},
		},
	}
}

// getSourceTool returns the MCP tool definition for get-source.
func getSourceTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get-source",
		Description: "Show the source code of a Julia function or type with line numbers and surrounding context, one window per method.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Dotted symbol path of the function or type, e.g. DataFrames.innerjoin.",
				},
			},
			"required": []string{"path"},
		},
	}
}

// searchSymbolsTool returns the MCP tool definition for search-symbols.
func searchSymbolsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search-symbols",
		Description: "Full-text search over symbols discovered by earlier list-package calls. Returns '<package>.<name> :: <kind>' lines ordered by relevance.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search terms matched against symbol names.",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default 20).",
				},
			},
			"required": []string{"query"},
		},
	}
}
