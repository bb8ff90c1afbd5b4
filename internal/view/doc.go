// Package view holds the synchronized game model: typed properties bound to
// trackable descriptors, the card, player and game objects that carry them,
// and the Tracker that indexes objects by id.
//
// Ownership boundary:
// - game enums, color sets and mana costs with their descriptors
// - property declarations per object kind
// - object lookup and reference resolution through Tracker
package view
