/*
Package llnorm is a toolbox for top-down parsing of context-free grammars.

LLnorm takes an arbitrary context-free grammar, normalizes it into a form
suitable for deterministic top-down parsing and tests input against it.
Package structure is as follows:

■ ll: Package ll implements grammars, the normalization pipeline (removal
of useless symbols, epsilon-rules and left recursion, left-factoring) and the
computation of FIRST and FOLLOW sets.

■ ll/topdown: Package topdown implements a predictive parser and an exhaustive
backtracking recognizer, which are used to cross-check each other.

■ ll/scanner: Package scanner provides tokenizers to feed input to a parser.

■ ll/topdown/trepl: T.REPL is an interactive sandbox for membership queries.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package llnorm
