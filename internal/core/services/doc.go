// Package services implements the driving port interfaces.
//
// ConversionService dispatches parsed documents to the registered
// converters. FetchService runs fetched pages through it and applies the
// word budget. RenderService and SettingsService wrap the image renderers
// and the config store.
package services
