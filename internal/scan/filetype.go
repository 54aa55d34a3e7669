package scan

// Language is a programming language recognized by the scanner.
// The set is closed: classification is a fixed table lookup, not detection.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangCpp        Language = "cpp"
	LangC          Language = "c"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangZig        Language = "zig"
	LangShell      Language = "shell"
	LangCSS        Language = "css"
	LangSQL        Language = "sql"
	LangRuby       Language = "ruby"
	LangPHP        Language = "php"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangHTML       Language = "html"
	LangDart       Language = "dart"
	LangLua        Language = "lua"
	LangPerl       Language = "perl"
	LangR          Language = "r"
	LangHaskell    Language = "haskell"
	LangElixir     Language = "elixir"
)

// Category groups non-language file types by what they are used for.
type Category string

const (
	CategoryConfig        Category = "config"
	CategoryDocumentation Category = "documentation"
	CategoryData          Category = "data"
	CategoryImage         Category = "image"
	CategoryAudio         Category = "audio"
	CategoryFont          Category = "font"
	CategoryArchive       Category = "archive"
	CategoryBinary        Category = "binary"
)

// AdditionalType is a recognized non-language file type. Each type belongs
// to exactly one Category.
type AdditionalType string

const (
	TypeYAML       AdditionalType = "yaml"
	TypeTOML       AdditionalType = "toml"
	TypeJSON       AdditionalType = "json"
	TypeINI        AdditionalType = "ini"
	TypeXML        AdditionalType = "xml"
	TypeEnv        AdditionalType = "env"
	TypeMakefile   AdditionalType = "makefile"
	TypeDockerfile AdditionalType = "dockerfile"
	TypeMarkdown   AdditionalType = "md"
	TypeRST        AdditionalType = "rst"
	TypeText       AdditionalType = "txt"
	TypeLicense    AdditionalType = "license"
	TypeCSV        AdditionalType = "csv"
	TypeTSV        AdditionalType = "tsv"
	TypePNG        AdditionalType = "png"
	TypeJPEG       AdditionalType = "jpeg"
	TypeGIF        AdditionalType = "gif"
	TypeSVG        AdditionalType = "svg"
	TypeWebP       AdditionalType = "webp"
	TypeICO        AdditionalType = "ico"
	TypeMP3        AdditionalType = "mp3"
	TypeWAV        AdditionalType = "wav"
	TypeOGG        AdditionalType = "ogg"
	TypeFLAC       AdditionalType = "flac"
	TypeTTF        AdditionalType = "ttf"
	TypeOTF        AdditionalType = "otf"
	TypeWOFF       AdditionalType = "woff"
	TypeZIP        AdditionalType = "zip"
	TypeTar        AdditionalType = "tar"
	TypeGzip       AdditionalType = "gz"
	TypeSevenZip   AdditionalType = "7z"
	TypeRAR        AdditionalType = "rar"
	TypeExe        AdditionalType = "exe"
	TypeSharedLib  AdditionalType = "so"
	TypeDLL        AdditionalType = "dll"
	TypeObject     AdditionalType = "o"
	TypeClassFile  AdditionalType = "class"
	TypePyc        AdditionalType = "pyc"
	TypeWasm       AdditionalType = "wasm"
	TypePDF        AdditionalType = "pdf"
)

var additionalCategories = map[AdditionalType]Category{
	TypeYAML:       CategoryConfig,
	TypeTOML:       CategoryConfig,
	TypeJSON:       CategoryConfig,
	TypeINI:        CategoryConfig,
	TypeXML:        CategoryConfig,
	TypeEnv:        CategoryConfig,
	TypeMakefile:   CategoryConfig,
	TypeDockerfile: CategoryConfig,
	TypeMarkdown:   CategoryDocumentation,
	TypeRST:        CategoryDocumentation,
	TypeText:       CategoryDocumentation,
	TypeLicense:    CategoryDocumentation,
	TypeCSV:        CategoryData,
	TypeTSV:        CategoryData,
	TypePNG:        CategoryImage,
	TypeJPEG:       CategoryImage,
	TypeGIF:        CategoryImage,
	TypeSVG:        CategoryImage,
	TypeWebP:       CategoryImage,
	TypeICO:        CategoryImage,
	TypeMP3:        CategoryAudio,
	TypeWAV:        CategoryAudio,
	TypeOGG:        CategoryAudio,
	TypeFLAC:       CategoryAudio,
	TypeTTF:        CategoryFont,
	TypeOTF:        CategoryFont,
	TypeWOFF:       CategoryFont,
	TypeZIP:        CategoryArchive,
	TypeTar:        CategoryArchive,
	TypeGzip:       CategoryArchive,
	TypeSevenZip:   CategoryArchive,
	TypeRAR:        CategoryArchive,
	TypeExe:        CategoryBinary,
	TypeSharedLib:  CategoryBinary,
	TypeDLL:        CategoryBinary,
	TypeObject:     CategoryBinary,
	TypeClassFile:  CategoryBinary,
	TypePyc:        CategoryBinary,
	TypeWasm:       CategoryBinary,
	TypePDF:        CategoryBinary,
}

// Category returns the category this type belongs to.
func (a AdditionalType) Category() Category {
	return additionalCategories[a]
}

// NonText reports whether files of this type never carry scannable text
// (images, audio, fonts, archives and binary blobs).
func (a AdditionalType) NonText() bool {
	switch a.Category() {
	case CategoryImage, CategoryAudio, CategoryFont, CategoryArchive, CategoryBinary:
		return true
	}
	return false
}

// FileTypeKind discriminates the FileType variants.
type FileTypeKind int

const (
	KindUnknown FileTypeKind = iota
	KindLanguage
	KindAdditional
)

// FileType tags a file as a programming language, a recognized
// non-language type, or unknown.
type FileType struct {
	Kind       FileTypeKind
	Language   Language       // set when Kind == KindLanguage
	Additional AdditionalType // set when Kind == KindAdditional
}

// UnknownType returns the unknown file type.
func UnknownType() FileType {
	return FileType{Kind: KindUnknown}
}

// LanguageType returns a FileType tagging a programming language.
func LanguageType(l Language) FileType {
	return FileType{Kind: KindLanguage, Language: l}
}

// AdditionalFileType returns a FileType tagging a non-language type.
func AdditionalFileType(a AdditionalType) FileType {
	return FileType{Kind: KindAdditional, Additional: a}
}

// IsUnknown reports whether the type is unknown.
func (t FileType) IsUnknown() bool { return t.Kind == KindUnknown }

// IsConfiguration reports whether the type is a config-category
// additional type.
func (t FileType) IsConfiguration() bool {
	return t.Kind == KindAdditional && t.Additional.Category() == CategoryConfig
}

// String returns a short display name, e.g. "go" or "yaml".
func (t FileType) String() string {
	switch t.Kind {
	case KindLanguage:
		return string(t.Language)
	case KindAdditional:
		return string(t.Additional)
	}
	return "unknown"
}
