package script

import (
	"fmt"
	"strings"
)

// Script is a renderable Julia program plus the package it depends on.
type Script struct {
	// Code is the program text passed to julia -e.
	Code string
	// Package is the package imported by the prologue, empty when the
	// target lives in an always-available namespace. The runner reports
	// it in package-not-found diagnostics.
	Package string
}

// GetDoc builds the documentation script for path. When includeUnexported
// is set the detail level is overridden entirely: the script walks every
// symbol of the target module and prints each doc block.
func GetDoc(path string, level DetailLevel, includeUnexported bool) (Script, error) {
	if err := ValidatePath(path); err != nil {
		return Script{}, err
	}

	if includeUnexported {
		return build(path, true, fmt.Sprintf(allSymbolDocsTemplate, path)), nil
	}

	switch level {
	case DetailConcise:
		return build(path, false, fmt.Sprintf(conciseDocTemplate, path)), nil
	case DetailAll:
		return build(path, false, fmt.Sprintf(fullDetailDocTemplate, path)), nil
	case DetailFull, "":
		return build(path, false, fmt.Sprintf(docTemplate, path)), nil
	default:
		return Script{}, fmt.Errorf("%w: %q", ErrInvalidDetail, level)
	}
}

// ListPackage builds the symbol-listing script for a module path.
func ListPackage(path string, includeUnexported bool) (Script, error) {
	if err := ValidatePath(path); err != nil {
		return Script{}, err
	}
	all := "false"
	if includeUnexported {
		all = "true"
	}
	return build(path, true, fmt.Sprintf(listPackageTemplate, path, all)), nil
}

// ExploreProject builds the manifest-reading script for a project directory.
// The directory is a filesystem path, not a symbol path; it is embedded as a
// quoted Julia string literal rather than run through the identifier grammar.
func ExploreProject(dir string) (Script, error) {
	if strings.TrimSpace(dir) == "" {
		return Script{}, fmt.Errorf("%w: project directory is empty", ErrInvalidPath)
	}
	return Script{Code: fmt.Sprintf(exploreProjectTemplate, quote(dir))}, nil
}

// GetSource builds the source-window script for path. The emitted program
// carries two helpers: a heuristic block scanner that counts block-opening
// keywords against end closers, and a renderer printing a numbered window of
// 5 lines before the definition and 5 after the computed block end.
func GetSource(path string) (Script, error) {
	if err := ValidatePath(path); err != nil {
		return Script{}, err
	}
	return build(path, false, fmt.Sprintf(getSourceTemplate, path, path)), nil
}

// build attaches the import prologue needed for path, if any.
func build(path string, moduleTarget bool, code string) Script {
	pkg := packageFor(path, moduleTarget)
	if pkg == "" {
		return Script{Code: code}
	}
	return Script{
		Code:    fmt.Sprintf("import %s\n%s", pkg, code),
		Package: pkg,
	}
}

// quote renders s as a Julia double-quoted string literal. Backslashes,
// quotes, and the interpolation character are escaped.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

const conciseDocTemplate = `println("Type signature: ", first(methods(%s)))`

const docTemplate = `println(string(Base.Docs.doc(%s)))`

const fullDetailDocTemplate = `let target = %s
    println(string(Base.Docs.doc(target)))
    println()
    println("Methods:")
    for m in methods(target)
        println("  ", m)
    end
    if target isa Type
        T = Base.unwrap_unionall(target)
        if T isa DataType && !isabstracttype(T) && fieldcount(T) > 0
            println()
            println("Fields:")
            for (fn, ft) in zip(fieldnames(T), fieldtypes(T))
                println("  ", fn, "::", ft)
            end
        end
    end
end`

const allSymbolDocsTemplate = `let m = %s
    syms = filter(n -> !startswith(string(n), "#"), names(m; all=true))
    sort!(syms; by=string)
    for s in syms
        println(string(Base.Docs.doc(Base.Docs.Binding(m, s))))
        println(repeat("-", 40))
    end
end`

const listPackageTemplate = `let m = %s
    syms = filter(n -> !startswith(string(n), "#"), names(m; all=%s))
    sort!(syms; by=string)
    for s in syms
        v = try getfield(m, s) catch; missing end
        println(v === missing ? "unknown" : string(typeof(v)), " ", s)
    end
end`

const exploreProjectTemplate = `import TOML
let dir = %s
    file = joinpath(dir, "Project.toml")
    isfile(file) || (file = joinpath(dir, "JuliaProject.toml"))
    isfile(file) || error("no Project.toml found in " * dir)
    proj = TOML.parsefile(file)
    println("Project: ", get(proj, "name", "unnamed"), " v", get(proj, "version", "0.0.0"))
    println("Dependencies:")
    deps = sort(collect(keys(get(proj, "deps", Dict{String,Any}()))))
    isempty(deps) && println("  (none)")
    for d in deps
        println("  ", d)
    end
end`

const getSourceTemplate = `function __find_block_end(lines, start)
    openers = ("function", "macro", "for", "while", "if", "let", "begin",
               "try", "struct", "mutable struct", "module", "quote", "do")
    depth = 0
    for i in start:length(lines)
        s = strip(lines[i])
        for kw in openers
            if s == kw || startswith(s, kw * " ") || startswith(s, kw * "(")
                depth += 1
                break
            end
        end
        if s == "end" || startswith(s, "end ") || startswith(s, "end#")
            depth -= 1
        end
        if depth <= 0
            return i
        end
    end
    return length(lines)
end
function __print_window(file, defline)
    isfile(file) || return false
    lines = readlines(file)
    1 <= defline <= length(lines) || return false
    stop = __find_block_end(lines, defline)
    for i in max(1, defline - 5):min(length(lines), stop + 5)
        mark = i == defline ? ">" : " "
        println(mark, " ", lpad(i, 5), ": ", lines[i])
    end
    return true
end
let shown = 0
    for m in methods(%s)
        file = string(m.file)
        src = Base.find_source_file(file)
        src === nothing && (src = file)
        println(m)
        println(src, ":", m.line)
        __print_window(src, m.line)
        println()
        shown += 1
    end
    shown == 0 && println("no methods found for %s")
end`
