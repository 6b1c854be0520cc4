// Package jsondoc decodes JSON documents into an order-preserving object tree
// so configuration files such as angular.json and package.json can be patched
// and written back without reshuffling the user's keys. Objects are backed by
// iancoleman/orderedmap.
package jsondoc
