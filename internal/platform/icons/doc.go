// Package icons defines the icon identifiers shared by the companion UI.
//
// The catalog maps stable icon identifiers to human-readable labels so that
// the dice engine and views can name an icon without dictating presentation.
// The browser renders each id from the Lucide sprite served with the page.
package icons
