package tap

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/willibrandon/tap/core"
)

// TypeNameOptions controls how type names are rendered in descriptors.
//
// Example:
//
//	opts := TypeNameOptions{IncludePackage: true, Prefix: "MyApp."}
//	name := TypeName[User](opts) // "MyApp.mypackage.User"
type TypeNameOptions struct {
	// IncludePackage determines whether to include the package path in the type name.
	IncludePackage bool

	// PackageDepth limits how many package path segments to include when IncludePackage is true.
	// 0 means include full package path.
	PackageDepth int

	// Prefix is prepended to the type name.
	Prefix string

	// Suffix is appended to the type name.
	Suffix string

	// SimplifyAnonymous renders anonymous struct types as "AnonymousStruct"
	// instead of their full definition.
	SimplifyAnonymous bool
}

// DefaultTypeNameOptions renders bare type names without package.
var DefaultTypeNameOptions = TypeNameOptions{
	PackageDepth: 1,
}

// nilTypeName is the runtime name of a nil interface value.
const nilTypeName = "<nil>"

type typeNameKey struct {
	typ  reflect.Type
	opts TypeNameOptions
}

var (
	typeNameCache     sync.Map
	typeNameCacheSize atomic.Int64
	typeNameHits      atomic.Int64
	typeNameMisses    atomic.Int64
)

// typeNameCacheMax caps the cache. TAP_TYPE_NAME_CACHE_SIZE=0 disables it.
var typeNameCacheMax = cacheSizeFromEnv(os.Getenv("TAP_TYPE_NAME_CACHE_SIZE"))

func cacheSizeFromEnv(v string) int64 {
	if v == "" {
		return 10000
	}
	size, err := strconv.ParseInt(v, 10, 64)
	if err != nil || size < 0 {
		return 10000
	}
	return size
}

// Describe returns the descriptor of value. The static name comes from T,
// the runtime name and kind from the dynamic value.
func Describe[T any](value T, opts TypeNameOptions) core.Descriptor {
	desc := core.Descriptor{
		Static:  cachedTypeName(reflect.TypeOf((*T)(nil)).Elem(), opts),
		Runtime: nilTypeName,
		Kind:    reflect.Invalid.String(),
	}
	if rt := reflect.TypeOf(any(value)); rt != nil {
		desc.Runtime = cachedTypeName(rt, opts)
		desc.Kind = rt.Kind().String()
	}
	return desc
}

// TypeName returns the rendered name of T.
func TypeName[T any](opts TypeNameOptions) string {
	return cachedTypeName(reflect.TypeOf((*T)(nil)).Elem(), opts)
}

func cachedTypeName(typ reflect.Type, opts TypeNameOptions) string {
	if typ == nil {
		return opts.Prefix + nilTypeName + opts.Suffix
	}

	key := typeNameKey{typ: typ, opts: opts}
	if cached, ok := typeNameCache.Load(key); ok {
		typeNameHits.Add(1)
		return cached.(string)
	}
	typeNameMisses.Add(1)

	name := opts.Prefix + formatTypeName(typ, opts) + opts.Suffix

	// A full cache stops admitting entries; names are still computed.
	if typeNameCacheSize.Load() < typeNameCacheMax {
		if _, loaded := typeNameCache.LoadOrStore(key, name); !loaded {
			typeNameCacheSize.Add(1)
		}
	}
	return name
}

func formatTypeName(typ reflect.Type, opts TypeNameOptions) string {
	name := typ.Name()
	if name == "" {
		return formatUnnamedType(typ, opts)
	}

	if typ.PkgPath() == "" {
		return name
	}

	if !opts.IncludePackage {
		return cleanGenericTypeName(typ)
	}

	pkgPath := typ.PkgPath()
	if opts.PackageDepth > 0 {
		parts := strings.Split(pkgPath, "/")
		if len(parts) > opts.PackageDepth {
			parts = parts[len(parts)-opts.PackageDepth:]
		}
		pkgPath = strings.Join(parts, "/")
	}
	return pkgPath + "." + name
}

// formatUnnamedType renders composite types through formatTypeName so their
// element types follow the same package rules as named types.
func formatUnnamedType(typ reflect.Type, opts TypeNameOptions) string {
	switch typ.Kind() {
	case reflect.Pointer:
		return "*" + formatTypeName(typ.Elem(), opts)
	case reflect.Slice:
		return "[]" + formatTypeName(typ.Elem(), opts)
	case reflect.Array:
		return "[" + strconv.Itoa(typ.Len()) + "]" + formatTypeName(typ.Elem(), opts)
	case reflect.Map:
		return "map[" + formatTypeName(typ.Key(), opts) + "]" + formatTypeName(typ.Elem(), opts)
	case reflect.Chan:
		elem := formatTypeName(typ.Elem(), opts)
		switch typ.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + elem
		case reflect.SendDir:
			return "chan<- " + elem
		default:
			// chan (<-chan T) needs parentheses to stay unambiguous.
			if typ.Elem().Kind() == reflect.Chan && typ.Elem().Name() == "" && typ.Elem().ChanDir() == reflect.RecvDir {
				elem = "(" + elem + ")"
			}
			return "chan " + elem
		}
	case reflect.Struct:
		if opts.SimplifyAnonymous {
			return "AnonymousStruct"
		}
	}
	return typ.String()
}

// cleanGenericTypeName strips the type's own package path from its type
// arguments, so Box[github.com/acme/app.User] becomes Box[User].
func cleanGenericTypeName(typ reflect.Type) string {
	typeName := typ.Name()

	openBracket := strings.Index(typeName, "[")
	if openBracket == -1 {
		return typeName
	}

	baseName := typeName[:openBracket]
	params := strings.ReplaceAll(typeName[openBracket:], typ.PkgPath()+".", "")
	return baseName + params
}

// TypeNameCacheStats provides performance statistics for the type name cache.
type TypeNameCacheStats struct {
	Hits     int64   // Number of cache hits
	Misses   int64   // Number of cache misses
	HitRatio float64 // Hit ratio as a percentage (0-100)
	Size     int64   // Number of entries currently in the cache
	MaxSize  int64   // Maximum number of entries admitted
}

// GetTypeNameCacheStats returns current cache statistics.
func GetTypeNameCacheStats() TypeNameCacheStats {
	hits := typeNameHits.Load()
	misses := typeNameMisses.Load()

	var ratio float64
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total) * 100
	}

	return TypeNameCacheStats{
		Hits:     hits,
		Misses:   misses,
		HitRatio: ratio,
		Size:     typeNameCacheSize.Load(),
		MaxSize:  typeNameCacheMax,
	}
}

// ResetTypeNameCache clears the type name cache and statistics.
func ResetTypeNameCache() {
	typeNameCache.Range(func(key, _ any) bool {
		typeNameCache.Delete(key)
		return true
	})
	typeNameCacheSize.Store(0)
	typeNameHits.Store(0)
	typeNameMisses.Store(0)
}
