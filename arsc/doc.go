// Package arsc decodes compiled resource tables (resources.arsc). The
// decoder walks the table's package chunks and surfaces the string pools a
// resource browser needs: the global value strings plus each package's type
// and key names. Per-entry resource values are counted, not decoded.
package arsc
