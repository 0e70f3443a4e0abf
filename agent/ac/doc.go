/*
Package ac is the AnonCreds call contract of the vector generator. The objects
are opaque JSON documents produced by an Engine, which does all of the
cryptography. What lives here is the data that is authored by us: the
presentation request model, the raw attribute value encoding, and the
non-revoked interval rules the verifier applies on top of the engine.
*/
package ac
