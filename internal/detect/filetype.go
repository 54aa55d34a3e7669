package detect

import (
	"path/filepath"
	"strings"

	"github.com/petrarca/context-scanner/internal/scan"
)

// languageByExtension maps lowercase extensions (without dot) to languages.
var languageByExtension = map[string]scan.Language{
	"js":     scan.LangJavaScript,
	"mjs":    scan.LangJavaScript,
	"cjs":    scan.LangJavaScript,
	"jsx":    scan.LangJavaScript,
	"ts":     scan.LangTypeScript,
	"tsx":    scan.LangTypeScript,
	"py":     scan.LangPython,
	"pyw":    scan.LangPython,
	"java":   scan.LangJava,
	"cs":     scan.LangCSharp,
	"cpp":    scan.LangCpp,
	"cc":     scan.LangCpp,
	"cxx":    scan.LangCpp,
	"hpp":    scan.LangCpp,
	"hh":     scan.LangCpp,
	"c":      scan.LangC,
	"h":      scan.LangC,
	"go":     scan.LangGo,
	"rs":     scan.LangRust,
	"zig":    scan.LangZig,
	"sh":     scan.LangShell,
	"bash":   scan.LangShell,
	"zsh":    scan.LangShell,
	"css":    scan.LangCSS,
	"scss":   scan.LangCSS,
	"sql":    scan.LangSQL,
	"rb":     scan.LangRuby,
	"php":    scan.LangPHP,
	"swift":  scan.LangSwift,
	"kt":     scan.LangKotlin,
	"kts":    scan.LangKotlin,
	"scala":  scan.LangScala,
	"html":   scan.LangHTML,
	"htm":    scan.LangHTML,
	"dart":   scan.LangDart,
	"lua":    scan.LangLua,
	"pl":     scan.LangPerl,
	"pm":     scan.LangPerl,
	"r":      scan.LangR,
	"hs":     scan.LangHaskell,
	"ex":     scan.LangElixir,
	"exs":    scan.LangElixir,
}

// additionalByExtension maps lowercase extensions to non-language types.
var additionalByExtension = map[string]scan.AdditionalType{
	"yaml":     scan.TypeYAML,
	"yml":      scan.TypeYAML,
	"toml":     scan.TypeTOML,
	"json":     scan.TypeJSON,
	"ini":      scan.TypeINI,
	"cfg":      scan.TypeINI,
	"conf":     scan.TypeINI,
	"xml":      scan.TypeXML,
	"env":      scan.TypeEnv,
	"md":       scan.TypeMarkdown,
	"markdown": scan.TypeMarkdown,
	"rst":      scan.TypeRST,
	"txt":      scan.TypeText,
	"csv":      scan.TypeCSV,
	"tsv":      scan.TypeTSV,
	"png":      scan.TypePNG,
	"jpg":      scan.TypeJPEG,
	"jpeg":     scan.TypeJPEG,
	"gif":      scan.TypeGIF,
	"svg":      scan.TypeSVG,
	"webp":     scan.TypeWebP,
	"ico":      scan.TypeICO,
	"mp3":      scan.TypeMP3,
	"wav":      scan.TypeWAV,
	"ogg":      scan.TypeOGG,
	"flac":     scan.TypeFLAC,
	"ttf":      scan.TypeTTF,
	"otf":      scan.TypeOTF,
	"woff":     scan.TypeWOFF,
	"woff2":    scan.TypeWOFF,
	"zip":      scan.TypeZIP,
	"tar":      scan.TypeTar,
	"gz":       scan.TypeGzip,
	"tgz":      scan.TypeGzip,
	"7z":       scan.TypeSevenZip,
	"rar":      scan.TypeRAR,
	"exe":      scan.TypeExe,
	"so":       scan.TypeSharedLib,
	"dylib":    scan.TypeSharedLib,
	"dll":      scan.TypeDLL,
	"o":        scan.TypeObject,
	"a":        scan.TypeObject,
	"class":    scan.TypeClassFile,
	"pyc":      scan.TypePyc,
	"wasm":     scan.TypeWasm,
	"pdf":      scan.TypePDF,
	"bin":      scan.TypeExe,
}

// wellKnownBasenames covers extensionless files with a fixed, recognized
// role. Lookup is exact (and therefore case-sensitive, matching how these
// files are conventionally named).
var wellKnownBasenames = map[string]scan.FileType{
	"Makefile":       scan.AdditionalFileType(scan.TypeMakefile),
	"makefile":       scan.AdditionalFileType(scan.TypeMakefile),
	"GNUmakefile":    scan.AdditionalFileType(scan.TypeMakefile),
	"Dockerfile":     scan.AdditionalFileType(scan.TypeDockerfile),
	"Containerfile":  scan.AdditionalFileType(scan.TypeDockerfile),
	"LICENSE":        scan.AdditionalFileType(scan.TypeLicense),
	"LICENCE":        scan.AdditionalFileType(scan.TypeLicense),
	"COPYING":        scan.AdditionalFileType(scan.TypeLicense),
	"NOTICE":         scan.AdditionalFileType(scan.TypeLicense),
	"README":         scan.AdditionalFileType(scan.TypeText),
	"CHANGELOG":      scan.AdditionalFileType(scan.TypeText),
	"AUTHORS":        scan.AdditionalFileType(scan.TypeText),
	".gitignore":     scan.AdditionalFileType(scan.TypeINI),
	".gitattributes": scan.AdditionalFileType(scan.TypeINI),
	".dockerignore":  scan.AdditionalFileType(scan.TypeINI),
	".editorconfig":  scan.AdditionalFileType(scan.TypeINI),
	".env":           scan.AdditionalFileType(scan.TypeEnv),
	"Gemfile":        scan.LanguageType(scan.LangRuby),
	"Rakefile":       scan.LanguageType(scan.LangRuby),
	"Jenkinsfile":    scan.AdditionalFileType(scan.TypeINI),
}

// Classify maps a path to its file type: extension lookup against the
// language table, then the additional-type table (both case-insensitive),
// then the well-known extensionless basenames, otherwise Unknown.
func Classify(path string) scan.FileType {
	base := filepath.Base(path)

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	if ext != "" {
		if lang, ok := languageByExtension[ext]; ok {
			return scan.LanguageType(lang)
		}
		if add, ok := additionalByExtension[ext]; ok {
			return scan.AdditionalFileType(add)
		}
	}

	if ft, ok := wellKnownBasenames[base]; ok {
		return ft
	}

	return scan.UnknownType()
}
