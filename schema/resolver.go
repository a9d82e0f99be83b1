package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oastest/internal/pathutil"
	"github.com/erraggy/oastest/oaserrors"
	"github.com/go-openapi/jsonpointer"
	"go.yaml.in/yaml/v4"
)

const (
	// MaxRefDepth is the default nesting depth at which reference expansion
	// stops and the recursion handler takes over.
	MaxRefDepth = 100
	// MaxCachedDocuments is the maximum number of external documents to cache.
	MaxCachedDocuments = 100
	// MaxFileSize is the maximum size of an external document to load (10MB).
	MaxFileSize = 10 * 1024 * 1024
)

// HTTPFetcher fetches content from an HTTP or HTTPS URL. It returns the
// response body, the Content-Type header, and any error.
type HTTPFetcher func(url string) ([]byte, string, error)

// RecursionHandler produces the replacement content for a reference the
// resolver identified as recursive. iteration is the tree depth at which the
// cycle was detected, ref is the parsed reference, and seen lists the
// references on the resolving stack, outermost first. The returned map is
// spliced into the document in place of the reference.
type RecursionHandler func(iteration int, ref *url.URL, seen []string) (map[string]any, error)

// cachedDocument is an external document held in the resolver cache.
type cachedDocument struct {
	doc       map[string]any
	fetchedAt time.Time
}

// Resolver dereferences $ref references in an OpenAPI document in place.
//
// Local references are spliced from the document itself, file references are
// loaded relative to a base directory, and HTTP references are fetched when
// a fetcher is configured. Recursive references are not an error: the
// resolver cuts each cycle by splicing in the output of its recursion
// handler, which by default re-derives the referenced section from a
// pre-resolution snapshot with placeholder nodes in place of the
// back-references.
type Resolver struct {
	// resolving tracks references currently being expanded, keyed by the
	// raw reference string.
	resolving map[string]bool
	// stack is the ordered view of resolving, passed to recursion handlers.
	stack []string
	// documents caches loaded external documents by file path or URL.
	documents map[string]*cachedDocument
	// cacheTTL bounds the age of cached external documents.
	cacheTTL time.Duration
	// baseDir anchors relative file references.
	baseDir string
	// baseURL anchors relative references when it is an HTTP(S) URL.
	baseURL string
	// httpFetch fetches HTTP references; nil disables HTTP resolution.
	httpFetch HTTPFetcher
	// maxDepth is the nesting depth at which expansion defers to the
	// recursion handler.
	maxDepth int
	// onRecursion overrides the default cycle-breaking handler when set.
	onRecursion RecursionHandler
	// snapshot is the pre-resolution copy of the document being resolved,
	// consulted by the default recursion handler.
	snapshot Document
}

// NewResolver returns a Resolver that resolves relative file references
// against baseDir.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{
		documents: make(map[string]*cachedDocument),
		cacheTTL:  5 * time.Minute,
		baseDir:   baseDir,
		maxDepth:  MaxRefDepth,
	}
}

// NewResolverWithHTTP returns a Resolver that additionally fetches HTTP
// references through fetch. Relative references resolve against baseURL when
// it is an HTTP(S) URL, and against baseDir otherwise.
func NewResolverWithHTTP(baseDir, baseURL string, fetch HTTPFetcher) *Resolver {
	r := NewResolver(baseDir)
	r.baseURL = baseURL
	r.httpFetch = fetch
	return r
}

// SetCacheTTL sets the maximum age of cached external documents. A zero or
// negative TTL keeps cached documents until eviction.
func (r *Resolver) SetCacheTTL(ttl time.Duration) {
	r.cacheTTL = ttl
}

// SetMaxDepth sets the nesting depth at which reference expansion defers to
// the recursion handler. Values below one are ignored.
func (r *Resolver) SetMaxDepth(depth int) {
	if depth > 0 {
		r.maxDepth = depth
	}
}

// SetRecursionHandler installs a custom handler for recursive references.
// Passing nil restores the default cycle-breaking handler.
func (r *Resolver) SetRecursionHandler(handler RecursionHandler) {
	r.onRecursion = handler
}

// Resolve dereferences every $ref in doc, mutating it in place, and returns
// the same document. A pre-resolution snapshot is taken first so that the
// default recursion handler can re-derive referenced sections as they looked
// before any splicing. Resolve may be called repeatedly; each call starts
// from a fresh snapshot and resolving stack, while the external document
// cache is retained.
func (r *Resolver) Resolve(doc Document) (Document, error) {
	if doc == nil {
		return nil, &oaserrors.SchemaError{Message: "cannot resolve a nil document"}
	}
	r.resolving = make(map[string]bool)
	r.stack = r.stack[:0]
	r.snapshot = doc.Clone()
	if err := r.resolveAny(doc, doc, 0); err != nil {
		return nil, err
	}
	return doc, nil
}

// resolveAny walks the value tree looking for $ref nodes. Placeholder nodes
// from earlier cycle cuts are left alone.
func (r *Resolver) resolveAny(root map[string]any, current any, depth int) error {
	switch v := current.(type) {
	case map[string]any:
		if IsRecursionPlaceholder(v) {
			return nil
		}
		if ref, ok := v["$ref"].(string); ok {
			return r.resolveNode(root, v, ref, depth)
		}
		for _, value := range v {
			if err := r.resolveAny(root, value, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := r.resolveAny(root, item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveNode splices the content referenced by ref into node. A reference
// already on the resolving stack, a whole-document self reference, or
// nesting beyond maxDepth is recursive: the node is replaced with the
// recursion handler's output instead of being followed.
func (r *Resolver) resolveNode(root, node map[string]any, ref string, depth int) error {
	if r.resolving[ref] || ref == "#" || ref == "#/" || depth > r.maxDepth {
		replacement, err := r.handleRecursion(ref, depth)
		if err != nil {
			return err
		}
		// Handler output is spliced as-is. References it still carries are
		// picked up by the next resolution pass.
		splice(node, replacement)
		return nil
	}

	r.resolving[ref] = true
	r.stack = append(r.stack, ref)
	defer func() {
		delete(r.resolving, ref)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	resolved, err := r.resolveRef(root, ref)
	if err != nil {
		return err
	}
	content, ok := resolved.(map[string]any)
	if !ok {
		return &oaserrors.SchemaError{
			Ref:     ref,
			Message: fmt.Sprintf("reference target is not an object (got %T)", resolved),
		}
	}
	splice(node, content)
	// The spliced content may itself contain references.
	return r.resolveAny(root, node, depth+1)
}

// handleRecursion invokes the configured recursion handler for ref.
func (r *Resolver) handleRecursion(ref string, depth int) (map[string]any, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, &oaserrors.SchemaError{Ref: ref, Message: "invalid reference URL", Cause: err}
	}
	handler := r.onRecursion
	if handler == nil {
		handler = r.breakRecursion
	}
	seen := make([]string, len(r.stack))
	copy(seen, r.stack)
	return handler(depth, parsed, seen)
}

// breakRecursion is the default recursion handler. It re-derives the
// referenced section from the pre-resolution snapshot and replaces every
// reference back into that section, or to any ancestor on the resolving
// stack, with the recursion placeholder. A fragment that no longer walks to
// a mapping yields an empty section.
func (r *Resolver) breakRecursion(_ int, ref *url.URL, seen []string) (map[string]any, error) {
	section, err := walkPointer(r.snapshot, ref.Fragment)
	if err != nil {
		return map[string]any{}, nil
	}
	content, ok := section.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	copied, _ := deepCopyValue(content).(map[string]any)
	broken := BreakRecursiveRefs(copied, ref.Fragment)
	for _, ancestor := range seen {
		if _, fragment, ok := strings.Cut(ancestor, "#"); ok && fragment != "" {
			broken = BreakRecursiveRefs(broken, fragment)
		}
	}
	return broken, nil
}

// BreakRecursiveRefs replaces every mapping under section whose $ref value
// contains fragment with the recursion placeholder. Nested mappings are
// walked; list members are left alone. The section is modified in place and
// returned.
func BreakRecursiveRefs(section map[string]any, fragment string) map[string]any {
	for key, value := range section {
		child, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if ref, ok := child["$ref"].(string); ok && strings.Contains(ref, fragment) {
			section[key] = RecursionPlaceholder()
			continue
		}
		section[key] = BreakRecursiveRefs(child, fragment)
	}
	return section
}

// resolveRef dispatches a reference to local, HTTP, or file resolution.
func (r *Resolver) resolveRef(root map[string]any, ref string) (any, error) {
	switch {
	case strings.HasPrefix(ref, "#"):
		return r.resolveLocal(root, ref)
	case pathutil.IsURL(ref):
		return r.resolveHTTP(ref)
	case pathutil.IsURL(r.baseURL):
		resolved, err := r.resolveRelativeURL(ref)
		if err != nil {
			return nil, err
		}
		return r.resolveHTTP(resolved)
	default:
		return r.resolveExternal(ref)
	}
}

// resolveLocal walks a #/ reference inside the given document.
func (r *Resolver) resolveLocal(root map[string]any, ref string) (any, error) {
	value, err := walkPointer(root, strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, &oaserrors.SchemaError{
			Ref:     ref,
			RefType: "local",
			Message: "unable to resolve local reference",
			Cause:   err,
		}
	}
	return value, nil
}

// resolveExternal loads a file reference relative to baseDir and walks its
// optional fragment.
func (r *Resolver) resolveExternal(ref string) (any, error) {
	filePath, fragment, _ := strings.Cut(ref, "#")
	if filePath == "" {
		return nil, &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "reference has no file path"}
	}
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(r.baseDir, filePath)
	}
	if err := r.checkTraversal(ref, filePath); err != nil {
		return nil, err
	}
	doc, err := r.loadFile(ref, filePath)
	if err != nil {
		return nil, err
	}
	if fragment != "" {
		return r.resolveLocal(doc, "#"+fragment)
	}
	return doc, nil
}

// checkTraversal rejects file references that escape the base directory.
func (r *Resolver) checkTraversal(ref, filePath string) error {
	absBase, err := filepath.Abs(r.baseDir)
	if err != nil {
		return &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "unable to resolve base directory", Cause: err}
	}
	absTarget, err := filepath.Abs(filePath)
	if err != nil {
		return &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "unable to resolve file path", Cause: err}
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") {
		return &oaserrors.SchemaError{
			Ref:             ref,
			RefType:         "file",
			IsPathTraversal: true,
			Message:         fmt.Sprintf("reference escapes base directory %q", r.baseDir),
		}
	}
	return nil
}

// loadFile reads and decodes a referenced document from disk, consulting the
// cache first.
func (r *Resolver) loadFile(ref, filePath string) (map[string]any, error) {
	if doc, ok := r.cachedDoc(filePath); ok {
		return doc, nil
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "unable to stat referenced file", Cause: err}
	}
	if info.Size() > MaxFileSize {
		return nil, &oaserrors.SchemaError{
			Ref:     ref,
			RefType: "file",
			Message: fmt.Sprintf("referenced file exceeds %d byte limit (%d bytes)", MaxFileSize, info.Size()),
		}
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "unable to read referenced file", Cause: err}
	}
	doc, err := decodeDocument(filePath, "", data)
	if err != nil {
		return nil, &oaserrors.SchemaError{Ref: ref, RefType: "file", Message: "unable to decode referenced file", Cause: err}
	}
	r.cacheDoc(filePath, doc)
	return doc, nil
}

// resolveHTTP fetches an HTTP(S) reference and walks its optional fragment.
func (r *Resolver) resolveHTTP(ref string) (any, error) {
	if r.httpFetch == nil {
		return nil, &oaserrors.SchemaError{
			Ref:     ref,
			RefType: "http",
			Message: "HTTP references require a fetcher; construct the resolver with NewResolverWithHTTP",
		}
	}
	docURL, fragment, _ := strings.Cut(ref, "#")
	doc, ok := r.cachedDoc(docURL)
	if !ok {
		body, contentType, err := r.httpFetch(docURL)
		if err != nil {
			return nil, &oaserrors.SchemaError{Ref: ref, RefType: "http", Message: "unable to fetch referenced URL", Cause: err}
		}
		if len(body) > MaxFileSize {
			return nil, &oaserrors.SchemaError{
				Ref:     ref,
				RefType: "http",
				Message: fmt.Sprintf("referenced document exceeds %d byte limit (%d bytes)", MaxFileSize, len(body)),
			}
		}
		doc, err = decodeDocument(docURL, contentType, body)
		if err != nil {
			return nil, &oaserrors.SchemaError{Ref: ref, RefType: "http", Message: "unable to decode referenced URL", Cause: err}
		}
		r.cacheDoc(docURL, doc)
	}
	if fragment != "" {
		return r.resolveLocal(doc, "#"+fragment)
	}
	return doc, nil
}

// resolveRelativeURL resolves ref against the configured base URL.
func (r *Resolver) resolveRelativeURL(ref string) (string, error) {
	base, err := url.Parse(r.baseURL)
	if err != nil {
		return "", &oaserrors.SchemaError{Ref: ref, Message: "invalid base URL", Cause: err}
	}
	relative, err := url.Parse(ref)
	if err != nil {
		return "", &oaserrors.SchemaError{Ref: ref, Message: "invalid reference URL", Cause: err}
	}
	return base.ResolveReference(relative).String(), nil
}

// cachedDoc returns a cached external document if present and fresh.
func (r *Resolver) cachedDoc(key string) (map[string]any, bool) {
	entry, ok := r.documents[key]
	if !ok {
		return nil, false
	}
	if r.cacheTTL > 0 && time.Since(entry.fetchedAt) > r.cacheTTL {
		delete(r.documents, key)
		return nil, false
	}
	return entry.doc, true
}

// cacheDoc stores an external document, evicting the oldest entry when the
// cache is full.
func (r *Resolver) cacheDoc(key string, doc map[string]any) {
	if len(r.documents) >= MaxCachedDocuments {
		var oldestKey string
		var oldestTime time.Time
		for k, entry := range r.documents {
			if oldestKey == "" || entry.fetchedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = entry.fetchedAt
			}
		}
		if oldestKey != "" {
			delete(r.documents, oldestKey)
		}
	}
	r.documents[key] = &cachedDocument{doc: doc, fetchedAt: time.Now()}
}

// splice replaces node's entries, including its $ref, with a deep copy of
// replacement. The copy is taken before node is cleared: replacement may be
// an ancestor of node, as when a definition references itself. A $ref
// belonging to replacement survives the splice; callers re-walk the node to
// resolve reference chains.
func splice(node, replacement map[string]any) {
	copied, _ := deepCopyValue(replacement).(map[string]any)
	clear(node)
	for key, value := range copied {
		node[key] = value
	}
}

// walkPointer walks a URL fragment as a JSON pointer into doc. An empty or
// root fragment returns doc itself.
func walkPointer(doc map[string]any, fragment string) (any, error) {
	if fragment == "" || fragment == "/" {
		return doc, nil
	}
	if !strings.HasPrefix(fragment, "/") {
		fragment = "/" + fragment
	}
	pointer, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, err
	}
	value, _, err := pointer.Get(doc)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// decodeDocument decodes JSON or YAML document bytes. JSON decoding is used
// when the path ends in .json or the content type mentions json; everything
// else goes through the YAML decoder, which accepts JSON input as well.
func decodeDocument(path, contentType string, data []byte) (map[string]any, error) {
	var doc map[string]any
	if strings.HasSuffix(strings.ToLower(path), ".json") || strings.Contains(contentType, "json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
