package config

// DefaultConfigYAML is the annotated configuration written by `pysmell init`.
// Every value matches the built-in defaults, so the generated file changes
// nothing until edited.
const DefaultConfigYAML = `# pysmell configuration file
#
# Thresholds below are the built-in defaults. Uncomment and adjust the
# values you want to change; anything left out keeps its default.

smells:
  long_method:
    enabled: true
    # Maximum function length in lines (def line through last body line)
    max_lines: 30
    # Maximum cyclomatic complexity per function
    max_complexity: 10

  god_class:
    enabled: true
    max_fields: 15
    max_methods: 20
    max_lines: 200

  duplicated_code:
    enabled: true
    # Function pairs at or above this similarity are reported
    min_similarity: 0.8
    # Minimum statement count for a function to enter comparison
    min_chunk_size: 3

  large_parameter_list:
    enabled: true
    # Maximum parameter count, excluding self/cls
    max_parameters: 5

  magic_numbers:
    enabled: true
    # A value must repeat this many times in one file to be reported
    min_occurrences: 3
    # Values with these exact values are never reported
    whitelist: [0, 1, -1]
    # Only values whose magnitude falls in this range are considered
    min_value: 2
    max_value: 1000

  feature_envy:
    enabled: true
    # Minimum accesses to one foreign object
    min_foreign_accesses: 2
    # Minimum foreign-to-self access ratio
    foreign_access_ratio: 0.5

output:
  # text, json, or yaml
  format: text

analysis:
  recursive: true
  include_patterns: ["*.py"]
  exclude_patterns: []
`
