/*
Package ast defines the statement and expression tree consumed by the
stylesheet evaluator. The tree is produced by a parser collaborator and is
treated as immutable by the evaluator.

Statements and expressions are closed sums: sealed interfaces with one
struct per variant and exhaustive type switches at the use sites. The
variant set is fixed by the grammar, so no open dispatch is needed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ast
