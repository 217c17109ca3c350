// Package brcode builds static Pix BR Codes: EMV QRCPS Merchant Presented Mode
// payloads made of nested tag-length-value fields closed by a CRC-16/CCITT-FALSE
// checksum. Every function in the package is pure and safe for concurrent use.
package brcode
