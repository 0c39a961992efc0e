package docpeek

// Cache maps a PreviewKey's string form to its resolved preview text for
// the lifetime of one page session.
//
// Entries are write-once: once a key holds a value, later Set calls for
// that key leave it unchanged. There is no eviction.
type Cache interface {
	Get(key string) (text string, ok bool)
	Set(key string, text string)
}
