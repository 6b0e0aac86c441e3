package solidity

import (
	"bufio"
	"path/filepath"
	"regexp"
	"strings"
)

// SourceExt is the file extension of Solidity sources.
const SourceExt = ".sol"

// importRe recognizes the import statement forms Solidity allows:
//
//	import "./Foo.sol";
//	import {A, B} from "./Foo.sol";
//	import * as Ns from "./Foo.sol";
//	import "./Foo.sol" as Ns;
//
// with either quote style. The specifier is the first quoted string.
var importRe = regexp.MustCompile(`import\s+(?:[^'";]*?from\s+)?(?:"([^"]+)"|'([^']+)')`)

// IsSourceFile reports whether the path names a Solidity source file.
func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExt)
}

// ParseImports scans source text and returns the import specifiers in order
// of appearance. Commented-out imports on line-comment lines are skipped.
func ParseImports(source string) []string {
	var specifiers []string

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "*") {
			continue
		}
		for _, match := range importRe.FindAllStringSubmatch(line, -1) {
			specifier := match[1]
			if specifier == "" {
				specifier = match[2]
			}
			if specifier != "" {
				specifiers = append(specifiers, specifier)
			}
		}
	}

	return specifiers
}

// IsLocalImport reports whether a specifier points at a project file rather
// than a packaged dependency. Package imports are marked by a leading "@"
// (e.g. "@openzeppelin/contracts/..."), and only specifiers naming a Solidity
// source are considered.
func IsLocalImport(specifier string) bool {
	if specifier == "" || strings.HasPrefix(specifier, "@") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(specifier), SourceExt)
}

// ResolveImport resolves a local import specifier against the importing
// file's directory, using host filesystem semantics. It returns false for
// package imports and malformed specifiers.
func ResolveImport(fromFile, specifier string) (string, bool) {
	if !IsLocalImport(specifier) {
		return "", false
	}

	target := filepath.FromSlash(specifier)
	if filepath.IsAbs(target) {
		return filepath.Clean(target), true
	}
	return filepath.Join(filepath.Dir(fromFile), target), true
}
