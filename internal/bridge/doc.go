// Package bridge converts between externally-shaped bookmark trees and the
// store's flat per-node attribute contract.
//
// Import walks a decoded tree top-down, parent before child, so that every
// AddNode parent lookup resolves. Names are deduplicated against the whole
// destination tree before each insert, because node names are globally
// unique in the store. Export walks the store bottom-up from the root,
// rebuilding the nested form; nothing is renamed on the way out.
package bridge
