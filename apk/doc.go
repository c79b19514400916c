// Package apk extracts compiled resources from Android application
// packages. An APK is a zip archive; the compiled manifest lives at
// AndroidManifest.xml and the resource table at resources.arsc, both at the
// archive root.
package apk
